package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/reqctx"
	"github.com/gin-gonic/gin"
)

const (
	// AuthHeader carries the session token on requests and on register/login responses.
	AuthHeader = "x-auth"

	userKey  = "user"
	tokenKey = "token"

	errUnauthorized = "Unauthorized"
)

// authenticator is the subset of usecase.AuthUsecase the middleware needs.
type authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}

// Auth resolves the session token to a user and stores both in the gin
// context. Requests without a live session are rejected with 401.
func Auth(auth authenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := tokenFromRequest(c)

		user, err := auth.Authenticate(c.Request.Context(), rawToken)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				logger.ErrorContext(c.Request.Context(), "authenticate", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), user.ID))
		c.Set(userKey, user)
		c.Set(tokenKey, rawToken)
		c.Next()
	}
}

// tokenFromRequest prefers x-auth and falls back to an Authorization bearer token.
func tokenFromRequest(c *gin.Context) string {
	if tok := c.GetHeader(AuthHeader); tok != "" {
		return tok
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// CurrentUser returns the user stored by Auth. It panics if Auth did not run.
func CurrentUser(c *gin.Context) *domain.User {
	return c.MustGet(userKey).(*domain.User)
}

// CurrentToken returns the exact token the request authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
