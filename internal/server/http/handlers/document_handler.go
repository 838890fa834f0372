package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/posdocs/internal/server/http/dto"
)

// DocumentHandler serves the action surface of an order.
type DocumentHandler struct {
	facade DocumentFacade
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(facade DocumentFacade) *DocumentHandler {
	return &DocumentHandler{facade: facade}
}

// Actions handles GET /api/orders/:id/actions.
func (h *DocumentHandler) Actions(c *gin.Context) {
	surface, err := h.facade.Actions(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, surface)
}

// Dispatch handles POST /api/orders/:id/documents.
func (h *DocumentHandler) Dispatch(c *gin.Context) {
	var req dto.DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	task, err := h.facade.Dispatch(c.Request.Context(), c.Param("id"), req.Action, req.DocumentType)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, task)
}

// Receipt handles GET /api/orders/:id/receipt.
func (h *DocumentHandler) Receipt(c *gin.Context) {
	receipt, err := h.facade.Receipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}
