package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// AuthService handles signup requests, approval and login sessions.
type AuthService interface {
	RequestSignup(ctx context.Context, name, email, password string) error
	ListPending(ctx context.Context) ([]*entity.PendingUser, error)
	Approve(ctx context.Context, pendingID int64) (*entity.User, error)
	Reject(ctx context.Context, pendingID int64) error
	Login(ctx context.Context, email, password string) (*entity.Session, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token. Unknown or expired tokens give ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
	Users(ctx context.Context) ([]*entity.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authUseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	cost       int
	logger     *zap.Logger
	now        func() time.Time
	newToken   func() string
}

func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration, logger *zap.Logger) AuthService {
	return &authUseCase{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		cost:       bcrypt.DefaultCost,
		logger:     logger,
		now:        time.Now,
		newToken:   uuid.NewString,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return email, nil
}

func (uc *authUseCase) RequestSignup(ctx context.Context, name, email, password string) error {
	if err := required("name", name); err != nil {
		return err
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.users.CreatePending(ctx, &entity.PendingUser{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	})
}

func (uc *authUseCase) ListPending(ctx context.Context) ([]*entity.PendingUser, error) {
	return uc.users.ListPending(ctx)
}

func (uc *authUseCase) Approve(ctx context.Context, pendingID int64) (*entity.User, error) {
	u, err := uc.users.Approve(ctx, pendingID, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user approved", zap.Int64("user_id", u.ID), zap.String("email", u.Email))
	return u, nil
}

func (uc *authUseCase) Reject(ctx context.Context, pendingID int64) error {
	return uc.users.DeletePending(ctx, pendingID)
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	u, err := uc.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s := &entity.Session{
		Token:     uc.newToken(),
		UserID:    u.ID,
		Username:  u.Name,
		Role:      u.Role,
		ExpiresAt: uc.now().Add(uc.sessionTTL).UTC(),
	}
	if err := uc.sessions.Save(ctx, s, uc.sessionTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func (uc *authUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}

func (uc *authUseCase) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	s, err := uc.sessions.Find(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if !s.ExpiresAt.IsZero() && uc.now().After(s.ExpiresAt) {
		return nil, ErrUnauthenticated
	}
	return s, nil
}

func (uc *authUseCase) Users(ctx context.Context) ([]*entity.User, error) {
	return uc.users.List(ctx)
}

// EnsureAdmin creates the bootstrap admin account when no user has email yet.
func (uc *authUseCase) EnsureAdmin(ctx context.Context, email, password string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	_, err = uc.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u, err := uc.users.Create(ctx, &entity.User{
		Name:         "admin",
		Email:        email,
		Role:         entity.RoleAdmin,
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	uc.logger.Info("bootstrap admin created", zap.Int64("user_id", u.ID))
	return nil
}
