package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// TodoRepository scopes every lookup by owner inside the store query itself.
// Implementations return domain.ErrTodoNotFound for ids they cannot parse,
// ids that do not exist, and ids owned by someone else.
type TodoRepository interface {
	Create(ctx context.Context, ownerID, text string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id, ownerID string) (*domain.Todo, error)
	Update(ctx context.Context, id, ownerID string, changes domain.TodoChanges) (*domain.Todo, error)
	Delete(ctx context.Context, id, ownerID string) (*domain.Todo, error)
}
