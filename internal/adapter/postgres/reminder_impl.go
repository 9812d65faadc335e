package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

type ReminderRepoImpl struct {
	db *pgxpool.Pool
}

func NewReminderRepo(db *pgxpool.Pool) *ReminderRepoImpl {
	return &ReminderRepoImpl{db: db}
}

func scanReminder(row pgx.Row) (*entity.Reminder, error) {
	var rm entity.Reminder
	if err := row.Scan(&rm.ID, &rm.Task, &rm.Due, &rm.Done); err != nil {
		return nil, translateErr(err)
	}
	return &rm, nil
}

func (r *ReminderRepoImpl) List(ctx context.Context) ([]*entity.Reminder, error) {
	rows, err := r.db.Query(ctx, `SELECT id, task, due, done FROM reminders ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []*entity.Reminder{}
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rm)
	}
	return reminders, rows.Err()
}

// CreateWithNotification inserts the reminder and its notification in one transaction.
func (r *ReminderRepoImpl) CreateWithNotification(ctx context.Context, rm *entity.Reminder, n *entity.Notification) (*entity.Reminder, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	created, err := scanReminder(tx.QueryRow(ctx,
		`INSERT INTO reminders (task, due, done) VALUES ($1, $2, $3) RETURNING id, task, due, done`,
		rm.Task, rm.Due, rm.Done,
	))
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO notifications (type, title, message, "timestamp", read) VALUES ($1, $2, $3, $4, $5)`,
		n.Type, n.Title, n.Message, n.Timestamp, n.Read,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reminder notification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ReminderRepoImpl) SetDone(ctx context.Context, id int64, done bool) (*entity.Reminder, error) {
	return scanReminder(r.db.QueryRow(ctx,
		`UPDATE reminders SET done = $1 WHERE id = $2 RETURNING id, task, due, done`,
		done, id,
	))
}

func (r *ReminderRepoImpl) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM reminders WHERE id = $1`, id)
}
