package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-sqlite3"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an application error to a status code and client message.
// Store constraint failures surface with the raw store message.
func statusFor(err error) (int, string) {
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Message
	}

	if errors.Is(err, entity.ErrNotFound) {
		return http.StatusNotFound, "Not found"
	}

	var storeErr sqlite3.Error
	if errors.As(err, &storeErr) {
		return http.StatusBadRequest, storeErr.Error()
	}

	return http.StatusInternalServerError, err.Error()
}

// respondError writes the error body and logs server-side failures
func (h *Handlers) respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"error", err)
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
