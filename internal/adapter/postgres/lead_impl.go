package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

const leadColumns = `id, name, email, company, stage, status, value, contact, notes, created_at`

// LeadRepoImpl implements repository.LeadRepository on PostgreSQL.
type LeadRepoImpl struct {
	db *pgxpool.Pool
}

func NewLeadRepo(db *pgxpool.Pool) *LeadRepoImpl {
	return &LeadRepoImpl{db: db}
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var l entity.Lead
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Stage, &l.Status, &l.Value, &l.Contact, &l.Notes, &l.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &l, nil
}

func (r *LeadRepoImpl) query(ctx context.Context, sql string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepoImpl) List(ctx context.Context) ([]*entity.Lead, error) {
	return r.query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY id DESC`)
}

func (r *LeadRepoImpl) Recent(ctx context.Context, limit int) ([]*entity.Lead, error) {
	return r.query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *LeadRepoImpl) Create(ctx context.Context, l *entity.Lead) (*entity.Lead, error) {
	return scanLead(r.db.QueryRow(ctx,
		`INSERT INTO leads (name, email, company, stage, status, value, contact, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+leadColumns,
		l.Name, l.Email, l.Company, l.Stage, l.Status, l.Value, l.Contact, l.Notes,
	))
}

func (r *LeadRepoImpl) UpdateStatus(ctx context.Context, id int64, status string) (*entity.Lead, error) {
	return scanLead(r.db.QueryRow(ctx,
		`UPDATE leads SET status = $1 WHERE id = $2 RETURNING `+leadColumns,
		status, id,
	))
}
