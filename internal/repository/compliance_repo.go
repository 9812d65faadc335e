package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

type ComplianceRepository interface {
	List(ctx context.Context) ([]*entity.Compliance, error)
	Create(ctx context.Context, c *entity.Compliance) (*entity.Compliance, error)
}
