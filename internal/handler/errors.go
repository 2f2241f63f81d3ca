package handler

import (
	"context"
	"errors"
	"net/http"

	"everywhere/internal/service"

	"github.com/gin-gonic/gin"
)

// statusForError maps a service failure onto the HTTP status returned to the
// client. An open breaker is checked first since it never reached the AI server.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrCircuitOpen):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, prefix string, err error) {
	c.JSON(statusForError(err), gin.H{"error": prefix + ": " + err.Error()})
}
