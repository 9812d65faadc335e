package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// LeadRepository defines persistence for sales leads.
type LeadRepository interface {
	List(ctx context.Context) ([]*entity.Lead, error)
	Create(ctx context.Context, l *entity.Lead) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*entity.Lead, error)
	// Recent returns the newest leads first.
	Recent(ctx context.Context, limit int) ([]*entity.Lead, error)
}
