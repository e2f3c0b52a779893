package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/ErlanBelekov/todo-api/internal/repository"
)

type TodoUsecase struct {
	repo repository.TodoRepository
	now  func() time.Time
}

func NewTodoUsecase(repo repository.TodoRepository) *TodoUsecase {
	return &TodoUsecase{repo: repo, now: time.Now}
}

func (u *TodoUsecase) Create(ctx context.Context, ownerID, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ValidationError("text must not be empty")
	}

	todo, err := u.repo.Create(ctx, ownerID, text)
	metrics.TodoOperationsTotal.WithLabelValues("create", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (u *TodoUsecase) List(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	todos, err := u.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (u *TodoUsecase) Get(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	todo, err := u.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// Update applies the allow-listed patch. Completion is always re-derived:
// only completed=true keeps (or makes) the todo done.
func (u *TodoUsecase) Update(ctx context.Context, ownerID, id string, patch domain.TodoPatch) (*domain.Todo, error) {
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, domain.ValidationError("text must not be empty")
		}
		patch.Text = &text
	}

	todo, err := u.repo.Update(ctx, id, ownerID, patch.Apply(u.now()))
	metrics.TodoOperationsTotal.WithLabelValues("update", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (u *TodoUsecase) Delete(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	todo, err := u.repo.Delete(ctx, id, ownerID)
	metrics.TodoOperationsTotal.WithLabelValues("delete", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return todo, nil
}
