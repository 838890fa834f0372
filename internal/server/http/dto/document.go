package dto

import "github.com/polkiloo/posdocs/internal/domain/model"

// DispatchRequest asks for a document action. An empty DocumentType uses the
// recommended document.
type DispatchRequest struct {
	Action       model.DocumentAction `json:"action" binding:"required"`
	DocumentType model.DocumentType   `json:"documentType"`
}

// HealthResponse reports service readiness.
type HealthResponse struct {
	Status string `json:"status"`
}
