package handlers

import (
	"errors"
	"net/http"

	"dine-on-time-api/services"

	"github.com/gin-gonic/gin"
)

var errorStatus = []struct {
	kind   error
	status int
}{
	{services.ErrInvalidInput, http.StatusBadRequest},
	{services.ErrUnauthorized, http.StatusUnauthorized},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrConflict, http.StatusConflict},
	{services.ErrUpstream, http.StatusInternalServerError},
}

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": message} with the status matching err's kind.
// Internal failures are logged and never leak their cause.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := services.Message(err, "internal server error")
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
