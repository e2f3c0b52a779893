package usecase_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// memUsers is a stateful UserRepository used where a test needs several
// operations to observe each other's writes.
type memUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*domain.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*domain.User)}
}

func (m *memUsers) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
	}
	m.nextID++
	u := &domain.User{ID: "user-" + strconv.Itoa(m.nextID), Email: email, PasswordHash: passwordHash}
	m.byID[u.ID] = u
	return clone(u), nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) AddToken(_ context.Context, userID string, token domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (m *memUsers) RemoveToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[userID]
	if !ok {
		return nil
	}
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

func clone(u *domain.User) *domain.User {
	c := *u
	c.Tokens = append([]domain.Token(nil), u.Tokens...)
	return &c
}

// memTodos is the ownership-scoped TodoRepository counterpart.
type memTodos struct {
	mu     sync.Mutex
	nextID int
	todos  []*domain.Todo
}

func (m *memTodos) Create(_ context.Context, ownerID, text string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &domain.Todo{ID: "todo-" + strconv.Itoa(m.nextID), OwnerID: ownerID, Text: text}
	m.todos = append(m.todos, t)
	c := *t
	return &c, nil
}

func (m *memTodos) ListByOwner(_ context.Context, ownerID string) ([]*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Todo
	for _, t := range m.todos {
		if t.OwnerID == ownerID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memTodos) find(id, ownerID string) (int, bool) {
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			return i, true
		}
	}
	return 0, false
}

func (m *memTodos) GetByID(_ context.Context, id, ownerID string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.find(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	c := *m.todos[i]
	return &c, nil
}

func (m *memTodos) Update(_ context.Context, id, ownerID string, ch domain.TodoChanges) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.find(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	t := m.todos[i]
	if ch.Text != nil {
		t.Text = *ch.Text
	}
	t.Completed = ch.Completed
	t.CompletedAt = ch.CompletedAt
	c := *t
	return &c, nil
}

func (m *memTodos) Delete(_ context.Context, id, ownerID string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.find(id, ownerID)
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	t := m.todos[i]
	m.todos = append(m.todos[:i], m.todos[i+1:]...)
	return t, nil
}
