package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errBadRequest         = "Bad request"
	errInvalidJSON        = "Request body must be valid JSON"
	errEmailTaken         = "Email is already registered"
	errInvalidCredentials = "Invalid email or password"
	errUnauthorized       = "Unauthorized"
	errTodoNotFound       = "Todo not found"
)

// respondError maps usecase errors onto status codes. Store failures that fit
// no domain error are logged and reported as 400; nothing is retried.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmailTaken})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidCredentials})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadRequest})
	}
}
