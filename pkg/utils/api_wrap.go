package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondStatus(c, http.StatusOK, data, message)
}

func RespondStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	respondError(c, code, "", message)
}

func respondError(c *gin.Context, code int, errorCode, message string) {
	c.JSON(code, APIResponse{
		Status:    "error",
		Code:      code,
		Message:   message,
		ErrorCode: errorCode,
		TraceID:   traceIDOf(c),
	})
}

// HandleServiceError maps service errors to an HTTP status and message.
// The error is attached to the gin context so the request logger records it.
func HandleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var genErr *GenerationError
	switch {
	case errors.As(err, &genErr):
		respondError(c, http.StatusBadGateway, GenerationErrorCode(genErr), genErr.Message())
	case errors.Is(err, ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, ErrSavedSearchNotFound):
		respondError(c, http.StatusNotFound, "not_found", "Saved search not found")
	case errors.Is(err, ErrStaleRequest):
		respondError(c, http.StatusConflict, "stale_request", ErrStaleRequest.Error())
	case errors.Is(err, ErrImageNotFound):
		respondError(c, http.StatusNotFound, "image_not_found", ErrImageNotFound.Error())
	case errors.Is(err, ErrImageServiceDisabled):
		respondError(c, http.StatusServiceUnavailable, "image_service_disabled", ErrImageServiceDisabled.Error())
	case errors.Is(err, ErrDatabaseError):
		respondError(c, http.StatusInternalServerError, "database_error", "Internal server error")
	default:
		respondError(c, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
