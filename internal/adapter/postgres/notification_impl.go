package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

const notificationColumns = `id, type, title, message, "timestamp", read`

type NotificationRepoImpl struct {
	db *pgxpool.Pool
}

func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepoImpl {
	return &NotificationRepoImpl{db: db}
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	if err := row.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &n.Timestamp, &n.Read); err != nil {
		return nil, translateErr(err)
	}
	return &n, nil
}

func (r *NotificationRepoImpl) List(ctx context.Context) ([]*entity.Notification, error) {
	rows, err := r.db.Query(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*entity.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepoImpl) Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx,
		`INSERT INTO notifications (type, title, message, "timestamp", read)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+notificationColumns,
		n.Type, n.Title, n.Message, n.Timestamp, n.Read,
	))
}

func (r *NotificationRepoImpl) MarkRead(ctx context.Context, id int64, read bool) (*entity.Notification, error) {
	return scanNotification(r.db.QueryRow(ctx,
		`UPDATE notifications SET read = $1 WHERE id = $2 RETURNING `+notificationColumns,
		read, id,
	))
}
