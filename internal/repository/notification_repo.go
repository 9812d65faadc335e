package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

type NotificationRepository interface {
	List(ctx context.Context) ([]*entity.Notification, error)
	Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
	MarkRead(ctx context.Context, id int64, read bool) (*entity.Notification, error)
}
