package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/server/http/dto"
)

// SessionHandler processes login, logout and session lookups.
type SessionHandler struct {
	facade SessionFacade
}

// NewSessionHandler creates SessionHandler instance.
func NewSessionHandler(facade SessionFacade) *SessionHandler {
	return &SessionHandler{facade: facade}
}

// Login handles POST /api/session/login.
func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	creds, err := h.facade.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(creds))
}

// Logout handles POST /api/session/logout.
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.facade.Logout(c.Request.Context()); err != nil {
		WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(c *gin.Context) {
	creds, err := h.facade.Session(c.Request.Context())
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(creds))
}

func toSessionResponse(creds model.Credentials) dto.SessionResponse {
	resp := dto.SessionResponse{User: creds.User}
	if !creds.ExpiresAt.IsZero() {
		expires := creds.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}
