package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// CompanyRepository defines persistence for companies.
type CompanyRepository interface {
	List(ctx context.Context) ([]*entity.Company, error)
	Create(ctx context.Context, c *entity.Company) (*entity.Company, error)
	// Get returns ErrNotFound when no company has the id.
	Get(ctx context.Context, id int64) (*entity.Company, error)
	Update(ctx context.Context, c *entity.Company) (*entity.Company, error)
	Delete(ctx context.Context, id int64) error
}
