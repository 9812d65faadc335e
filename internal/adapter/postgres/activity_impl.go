package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

const activityColumns = `id, type, title, notes, outcome, "timestamp"`

type ActivityRepoImpl struct {
	db *pgxpool.Pool
}

func NewActivityRepo(db *pgxpool.Pool) *ActivityRepoImpl {
	return &ActivityRepoImpl{db: db}
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var a entity.Activity
	if err := row.Scan(&a.ID, &a.Type, &a.Title, &a.Notes, &a.Outcome, &a.Timestamp); err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *ActivityRepoImpl) List(ctx context.Context) ([]*entity.Activity, error) {
	rows, err := r.db.Query(ctx, `SELECT `+activityColumns+` FROM activities ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []*entity.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *ActivityRepoImpl) Create(ctx context.Context, a *entity.Activity) (*entity.Activity, error) {
	return scanActivity(r.db.QueryRow(ctx,
		`INSERT INTO activities (type, title, notes, outcome, "timestamp")
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+activityColumns,
		a.Type, a.Title, a.Notes, a.Outcome, a.Timestamp,
	))
}

func (r *ActivityRepoImpl) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM activities WHERE id = $1`, id)
}
