package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

type ActivityRepository interface {
	List(ctx context.Context) ([]*entity.Activity, error)
	Create(ctx context.Context, a *entity.Activity) (*entity.Activity, error)
	Delete(ctx context.Context, id int64) error
}
