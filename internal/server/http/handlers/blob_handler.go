package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BlobHandler serves object URLs.
type BlobHandler struct {
	facade BlobFacade
}

// NewBlobHandler constructs BlobHandler.
func NewBlobHandler(facade BlobFacade) *BlobHandler {
	return &BlobHandler{facade: facade}
}

// Serve handles GET /blob/:handle.
func (h *BlobHandler) Serve(c *gin.Context) {
	blob, err := h.facade.Blob(c.Param("handle"))
	if err != nil {
		WriteError(c, err)
		return
	}

	contentType := blob.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", blob.Filename))
	c.Data(http.StatusOK, contentType, blob.Data)
}
