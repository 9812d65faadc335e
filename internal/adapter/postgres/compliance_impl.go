package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

type ComplianceRepoImpl struct {
	db *pgxpool.Pool
}

func NewComplianceRepo(db *pgxpool.Pool) *ComplianceRepoImpl {
	return &ComplianceRepoImpl{db: db}
}

func (r *ComplianceRepoImpl) List(ctx context.Context) ([]*entity.Compliance, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, status, due_date, notes FROM compliances ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	compliances := []*entity.Compliance{}
	for rows.Next() {
		var c entity.Compliance
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.DueDate, &c.Notes); err != nil {
			return nil, err
		}
		compliances = append(compliances, &c)
	}
	return compliances, rows.Err()
}

func (r *ComplianceRepoImpl) Create(ctx context.Context, c *entity.Compliance) (*entity.Compliance, error) {
	var out entity.Compliance
	err := r.db.QueryRow(ctx,
		`INSERT INTO compliances (name, status, due_date, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, status, due_date, notes`,
		c.Name, c.Status, c.DueDate, c.Notes,
	).Scan(&out.ID, &out.Name, &out.Status, &out.DueDate, &out.Notes)
	if err != nil {
		return nil, translateErr(err)
	}
	return &out, nil
}
