package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/notify"
	"github.com/polkiloo/posdocs/internal/session"
)

// CredentialsContextKey is a gin context key for the session snapshot.
const CredentialsContextKey = "credentials"

// SessionReader returns the live session.
type SessionReader interface {
	Session(ctx context.Context) (model.Credentials, error)
}

type unauthorizedResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// SessionRequired rejects requests while no operator is signed in.
func SessionRequired(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds, err := sessions.Session(c.Request.Context())
		if err != nil {
			if errors.Is(err, domainErrors.ErrNoSession) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedResponse{
					Message:  session.ExpiredMessage,
					Redirect: notify.LoginPath,
				})
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(CredentialsContextKey, creds)
		c.Next()
	}
}
