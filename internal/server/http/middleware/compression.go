package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxRequestBody caps request bodies after decompression.
const MaxRequestBody = 1 << 20

// DecompressRequest inflates gzip encoded request bodies and caps every body
// at MaxRequestBody bytes.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		body := c.Request.Body
		if body == nil {
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			reader, err := gzip.NewReader(body)
			if err != nil {
				c.AbortWithStatus(http.StatusBadRequest)
				return
			}
			defer reader.Close()
			defer body.Close()
			c.Request.Header.Del("Content-Encoding")
			c.Request.ContentLength = -1
			body = io.NopCloser(reader)
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, body, MaxRequestBody)
		c.Next()
	}
}
