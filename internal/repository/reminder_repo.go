package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// ReminderRepository defines persistence for reminders.
type ReminderRepository interface {
	List(ctx context.Context) ([]*entity.Reminder, error)
	// CreateWithNotification stores the reminder and its announcing notification atomically.
	CreateWithNotification(ctx context.Context, r *entity.Reminder, n *entity.Notification) (*entity.Reminder, error)
	SetDone(ctx context.Context, id int64, done bool) (*entity.Reminder, error)
	Delete(ctx context.Context, id int64) error
}
