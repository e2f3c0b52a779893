package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type todoUsecaser interface {
	Create(ctx context.Context, ownerID, text string) (*domain.Todo, error)
	List(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, id string, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.Todo, error)
}

type TodoHandler struct {
	todos  todoUsecaser
	logger *slog.Logger
}

func NewTodoHandler(todos todoUsecaser, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger.With("component", "todo_handler")}
}

type createTodoRequest struct {
	Text string `json:"text"`
}

// updateTodoRequest lists every field a client may change; anything else in
// the body is dropped by the decoder.
type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type todoResponse struct {
	ID          string `json:"_id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt"`
	Creator     string `json:"_creator"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		Creator:     t.OwnerID,
	}
}

// POST /todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), middleware.CurrentUser(c).ID, req.Text)
	if err != nil {
		respondError(c, h.logger, "create todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": toTodoResponse(todo)})
}

// GET /todos
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, h.logger, "list todos", err)
		return
	}

	items := make([]todoResponse, len(todos))
	for i, t := range todos {
		items[i] = toTodoResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"todos": items})
}

// GET /todos/:id
func (h *TodoHandler) GetByID(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": toTodoResponse(todo)})
}

// PATCH /todos/:id
// An empty body is an empty patch, which reopens the todo.
func (h *TodoHandler) Update(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidJSON})
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), domain.TodoPatch{
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(c, h.logger, "update todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": toTodoResponse(todo)})
}

// DELETE /todos/:id
// Responds with the deleted todo.
func (h *TodoHandler) Delete(c *gin.Context) {
	todo, err := h.todos.Delete(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "delete todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": toTodoResponse(todo)})
}
