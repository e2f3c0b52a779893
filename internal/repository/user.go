package repository

import (
	"context"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// (already normalized) email is registered.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// AddToken appends to the active token list in a single atomic update.
	AddToken(ctx context.Context, userID string, token domain.Token) error
	// RemoveToken pulls every entry matching token. Removing an absent token is not an error.
	RemoveToken(ctx context.Context, userID, token string) error
}
