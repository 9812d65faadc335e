package repository

import (
	"context"
	"time"

	"github.com/user/crm-service/internal/entity"
)

// SessionRepository stores login sessions keyed by opaque token.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session, ttl time.Duration) error
	// Find returns ErrNotFound for unknown or expired tokens.
	Find(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
}
