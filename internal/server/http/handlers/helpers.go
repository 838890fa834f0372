package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/posdocs/internal/adapter/backend"
	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/notify"
	"github.com/polkiloo/posdocs/internal/server/http/dto"
	"github.com/polkiloo/posdocs/internal/session"
)

const (
	invalidCredentialsText = "Invalid username or password."
	notFoundText           = "Not found."
	badRequestText         = "Invalid request."
	internalText           = "Something went wrong. Please try again."
)

// WriteError maps err onto a status code and an operator-facing message.
func WriteError(c *gin.Context, err error) {
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, domainErrors.ErrNoSession), errors.Is(err, backend.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: session.ExpiredMessage, Redirect: notify.LoginPath})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: invalidCredentialsText})
	case errors.Is(err, domainErrors.ErrInvalidAction), errors.Is(err, domainErrors.ErrInvalidDocumentType):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrOverrideNotApplicable), errors.Is(err, domainErrors.ErrThermalUnavailable):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: notFoundText})
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		if apiErr.Kind == backend.KindClient && apiErr.Status >= 400 {
			status = apiErr.Status
		}
		if apiErr.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(apiErr.RetryAfter/time.Second)))
		}
		c.JSON(status, dto.ErrorResponse{Message: backend.OperatorMessage(err)})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: internalText})
	}
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: badRequestText})
}

// queryLimit parses the optional limit query parameter.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, false
	}
	return limit, true
}
