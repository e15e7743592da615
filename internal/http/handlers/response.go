package handlers

import (
	"errors"
	"net/http"

	"processcraft/internal/logger"
	"processcraft/internal/service"

	"github.com/gin-gonic/gin"
)

// Every endpoint returns the same result shape:
// {status:"success", message, data} or {status:"error", message, field_errors}.

func respondOK(c *gin.Context, code int, message string, data any) {
	body := gin.H{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

func respondError(c *gin.Context, code int, message string, fields map[string][]string) {
	body := gin.H{"status": "error", "message": message}
	if len(fields) > 0 {
		body["field_errors"] = fields
	}
	c.JSON(code, body)
}

// respondServiceError maps service failures onto the wire. Authorization
// negatives render as not-found so a non-owner learns nothing; unexpected
// faults are logged here and leave only a generic message.
func respondServiceError(c *gin.Context, err error, deniedMessage string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, "Invalid input. Please check the fields.", ve.Fields)
	case errors.Is(err, service.ErrAccessDenied):
		respondError(c, http.StatusNotFound, deniedMessage, nil)
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		respondError(c, http.StatusInternalServerError, "An internal error occurred. Please try again.", nil)
	}
}
