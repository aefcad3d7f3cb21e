package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// HandleServiceError maps sentinel errors from the service layer onto HTTP statuses.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, ErrPostNotFound):
		RespondError(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, ErrMissingImage):
		RespondError(c, http.StatusBadRequest, "Image is required")
	case errors.Is(err, ErrMissingCaption):
		RespondError(c, http.StatusBadRequest, "Caption is required")
	case errors.Is(err, ErrInvalidImage):
		RespondError(c, http.StatusBadRequest, "Unsupported or corrupt image")
	case errors.Is(err, ErrImageTooLarge):
		RespondError(c, http.StatusBadRequest, "Image is too large")
	case errors.Is(err, ErrInvalidTag):
		RespondError(c, http.StatusBadRequest, "Unknown mood tag")
	case errors.Is(err, ErrEmptyMessage):
		RespondError(c, http.StatusBadRequest, "Message is required")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, ErrDatabaseError), errors.Is(err, ErrStorageError):
		zap.L().Error("dependency error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
