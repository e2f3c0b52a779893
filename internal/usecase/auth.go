package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/todo-api/internal/auth"
	"github.com/ErlanBelekov/todo-api/internal/domain"
	"github.com/ErlanBelekov/todo-api/internal/metrics"
	"github.com/ErlanBelekov/todo-api/internal/repository"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLen = 72
)

// tokenIssuer is the subset of auth.TokenService the usecase needs.
type tokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(raw string) (*auth.Claims, error)
}

type AuthUsecase struct {
	users      repository.UserRepository
	tokens     tokenIssuer
	validate   *validator.Validate
	bcryptCost int
	dummyHash  []byte
}

func NewAuthUsecase(users repository.UserRepository, tokens tokenIssuer, bcryptCost int) *AuthUsecase {
	// Compared against when the email is unknown so both failure paths pay for a bcrypt check.
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		panic("bcrypt dummy hash: " + err.Error())
	}
	return &AuthUsecase{
		users:      users,
		tokens:     tokens,
		validate:   validator.New(),
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Register validates and stores a new user, then opens its first session.
func (u *AuthUsecase) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, token, err := u.register(ctx, email, password)
	metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.Outcome(err)).Inc()
	return user, token, err
}

func (u *AuthUsecase) register(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = normalizeEmail(email)
	if err := u.validate.Var(email, "required,email"); err != nil {
		return nil, "", domain.ValidationError("%s is not a valid email", email)
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return nil, "", domain.ValidationError("password must be %d to %d characters long", minPasswordLen, maxPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := u.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// FindByCredentials returns the user whose stored hash matches password.
// Unknown emails and wrong passwords both yield domain.ErrInvalidCredentials.
func (u *AuthUsecase) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(u.dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login checks credentials and opens a new session alongside any existing ones.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := u.FindByCredentials(ctx, email, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.Outcome(err)).Inc()
		return nil, "", err
	}

	token, err := u.openSession(ctx, user)
	metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a raw token to its user. The signature must verify and
// the token must still be in the user's active list. It never writes.
func (u *AuthUsecase) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	user, err := u.authenticate(ctx, rawToken)
	if errors.Is(err, domain.ErrUnauthorized) {
		metrics.AuthAttemptsTotal.WithLabelValues("authenticate", "rejected").Inc()
	}
	return user, err
}

func (u *AuthUsecase) authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := u.tokens.Verify(rawToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.HasToken(rawToken) {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// RemoveToken ends one session. Removing a token that is not active is a no-op.
func (u *AuthUsecase) RemoveToken(ctx context.Context, user *domain.User, token string) error {
	if err := u.users.RemoveToken(ctx, user.ID, token); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	metrics.TokensRevokedTotal.Inc()
	return nil
}

func (u *AuthUsecase) openSession(ctx context.Context, user *domain.User) (string, error) {
	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	entry := domain.Token{Access: domain.AccessAuth, Token: token}
	if err := u.users.AddToken(ctx, user.ID, entry); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	user.Tokens = append(user.Tokens, entry)
	metrics.TokensIssuedTotal.Inc()
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
