package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// TaskHandler exposes task history and the notification feed.
type TaskHandler struct {
	facade TaskFacade
}

// NewTaskHandler constructs TaskHandler.
func NewTaskHandler(facade TaskFacade) *TaskHandler {
	return &TaskHandler{facade: facade}
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.facade.Task(c.Request.Context(), c.Param("id"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListByOrder handles GET /api/orders/:id/tasks.
func (h *TaskHandler) ListByOrder(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		badRequest(c)
		return
	}
	tasks, err := h.facade.Tasks(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		WriteError(c, err)
		return
	}
	if tasks == nil {
		tasks = []model.TaskRecord{}
	}
	c.JSON(http.StatusOK, tasks)
}

// Notifications handles GET /api/notifications.
func (h *TaskHandler) Notifications(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		badRequest(c)
		return
	}
	items := h.facade.Notifications(limit)
	if items == nil {
		items = []model.Notification{}
	}
	c.JSON(http.StatusOK, items)
}
