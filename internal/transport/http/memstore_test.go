package httptransport_test

import (
	"context"
	"strconv"
	"sync"

	"github.com/ErlanBelekov/todo-api/internal/domain"
)

// memStore backs both repositories for router tests.
type memStore struct {
	mu     sync.Mutex
	nextID int
	users  []*domain.User
	todos  []*domain.Todo
}

func (m *memStore) id(prefix string) string {
	m.nextID++
	return prefix + strconv.Itoa(m.nextID)
}

func (m *memStore) user(pred func(*domain.User) bool) *domain.User {
	for _, u := range m.users {
		if pred(u) {
			return u
		}
	}
	return nil
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.Tokens = append([]domain.Token(nil), u.Tokens...)
	return &c
}

func (m *memStore) Create(_ context.Context, email, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user(func(u *domain.User) bool { return u.Email == email }) != nil {
		return nil, domain.ErrEmailTaken
	}
	u := &domain.User{ID: m.id("u"), Email: email, PasswordHash: passwordHash}
	m.users = append(m.users, u)
	return copyUser(u), nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.user(func(u *domain.User) bool { return u.ID == id }); u != nil {
		return copyUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.user(func(u *domain.User) bool { return u.Email == email }); u != nil {
		return copyUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memStore) AddToken(_ context.Context, userID string, token domain.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(func(u *domain.User) bool { return u.ID == userID })
	if u == nil {
		return domain.ErrUserNotFound
	}
	u.Tokens = append(u.Tokens, token)
	return nil
}

func (m *memStore) RemoveToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.user(func(u *domain.User) bool { return u.ID == userID })
	if u == nil {
		return nil
	}
	var kept []domain.Token
	for _, t := range u.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
	return nil
}

// memTodos shares memStore's state under the TodoRepository method names.
type memTodos struct{ *memStore }

func (m memTodos) Create(_ context.Context, ownerID, text string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &domain.Todo{ID: m.id("t"), OwnerID: ownerID, Text: text}
	m.todos = append(m.todos, t)
	c := *t
	return &c, nil
}

func (m memTodos) ListByOwner(_ context.Context, ownerID string) ([]*domain.Todo, error) {
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

func (m memTodos) index(id, ownerID string) int {
	for i, t := range m.todos {
		if t.ID == id && t.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (m memTodos) GetByID(_ context.Context, id, ownerID string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id, ownerID)
	if i < 0 {
		return nil, domain.ErrTodoNotFound
	}
	c := *m.todos[i]
	return &c, nil
}

func (m memTodos) Update(_ context.Context, id, ownerID string, ch domain.TodoChanges) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id, ownerID)
	if i < 0 {
		return nil, domain.ErrTodoNotFound
	}
	t := m.todos[i]
	if ch.Text != nil {
		t.Text = *ch.Text
	}
	t.Completed, t.CompletedAt = ch.Completed, ch.CompletedAt
	c := *t
	return &c, nil
}

func (m memTodos) Delete(_ context.Context, id, ownerID string) (*domain.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id, ownerID)
	if i < 0 {
		return nil, domain.ErrTodoNotFound
	}
	t := m.todos[i]
	m.todos = append(m.todos[:i], m.todos[i+1:]...)
	return t, nil
}
