package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Michael4-fab/MedicalLabSimulator/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// StatusFor maps the application error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrFormat, apperrors.ErrValidation:
		return http.StatusBadRequest
	case apperrors.ErrPastDate, apperrors.ErrNotAvailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error writes the standard error envelope for err.
func Error(c *gin.Context, err error) {
	c.JSON(StatusFor(err), NewErrorResponse(err.Error()))
}
