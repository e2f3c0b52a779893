package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id::text, user_id::text, text, completed, completed_at`

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, ownerID, text string) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (user_id, text)
		VALUES ($1, $2)
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, ownerID, text))
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM   todos
		WHERE  user_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	tid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`
	return scanTodo(r.pool.QueryRow(ctx, query, tid, ownerID))
}

func (r *TodoRepository) Update(ctx context.Context, id, ownerID string, ch domain.TodoChanges) (*domain.Todo, error) {
	tid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	query := `
		UPDATE todos
		SET    text         = COALESCE($3::text, text),
		       completed    = $4,
		       completed_at = $5
		WHERE  id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	return scanTodo(r.pool.QueryRow(ctx, query, tid, ownerID, ch.Text, ch.Completed, ch.CompletedAt))
}

func (r *TodoRepository) Delete(ctx context.Context, id, ownerID string) (*domain.Todo, error) {
	tid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2 RETURNING ` + todoColumns
	return scanTodo(r.pool.QueryRow(ctx, query, tid, ownerID))
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
