package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// userUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type userUsecaser interface {
	Register(ctx context.Context, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	RemoveToken(ctx context.Context, user *domain.User, token string) error
}

type UserHandler struct {
	users  userUsecaser
	logger *slog.Logger
}

func NewUserHandler(users userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.With("component", "user_handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

// POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}

	c.Header(middleware.AuthHeader, token)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// POST /users/login
// Unknown email and wrong password produce the same 400.
func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}

	c.Header(middleware.AuthHeader, token)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(middleware.CurrentUser(c))})
}

// DELETE /users/me/token
// Ends only the session the request was made with.
func (h *UserHandler) Logout(c *gin.Context) {
	err := h.users.RemoveToken(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentToken(c))
	if err != nil {
		respondError(c, h.logger, "logout", err)
		return
	}
	c.Status(http.StatusOK)
}
