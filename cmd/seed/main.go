// seed registers two users and gives the first one two todos in the
// configured store. Re-runs log in instead of registering again.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/todo-api/config"
	"github.com/ErlanBelekov/todo-api/internal/auth"
	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/infrastructure/store"
	"github.com/ErlanBelekov/todo-api/internal/usecase"
	"github.com/lmittmann/tint"
)

type seedUser struct {
	email    string
	password string
}

var users = []seedUser{
	{"exampleuser@testsaregood.com", "testsaregood123"},
	{"someinvaliduser@invalid.com", "imsoinvalid123"},
}

var todos = []struct {
	text      string
	completed bool
}{
	{"First test todo", false},
	{"Second test todo", true},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: cfg.SlogLevel()}))

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	authUC := usecase.NewAuthUsecase(st.Users, auth.NewTokenService([]byte(cfg.JWTSecret)), cfg.BcryptCost)
	todoUC := usecase.NewTodoUsecase(st.Todos)

	var owner *domain.User
	var ownerToken string
	for i, su := range users {
		user, token, err := authUC.Register(ctx, su.email, su.password)
		if errors.Is(err, domain.ErrEmailTaken) {
			user, token, err = authUC.Login(ctx, su.email, su.password)
		}
		if err != nil {
			log.Fatalf("seed user %s: %v", su.email, err)
		}
		if i == 0 {
			owner, ownerToken = user, token
		}
		logger.Info("user ready", "email", user.Email, "id", user.ID)
	}

	existing, err := todoUC.List(ctx, owner.ID)
	if err != nil {
		log.Fatalf("list todos: %v", err)
	}
	created := 0
	if len(existing) == 0 {
		for _, spec := range todos {
			todo, err := todoUC.Create(ctx, owner.ID, spec.text)
			if err != nil {
				log.Fatalf("create todo %q: %v", spec.text, err)
			}
			if spec.completed {
				done := true
				if _, err := todoUC.Update(ctx, owner.ID, todo.ID, domain.TodoPatch{Completed: &done}); err != nil {
					log.Fatalf("complete todo %q: %v", spec.text, err)
				}
			}
			created++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Store:  %s\n", st.Name)
	fmt.Printf("  User:   %s\n", owner.Email)
	fmt.Printf("  Todos:  %d existing, %d created\n", len(existing), created)
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Printf("  curl -s http://localhost:%s/todos -H 'x-auth: %s'\n", cfg.Port, ownerToken)
}

