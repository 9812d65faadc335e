package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

const companyColumns = `id, name, industry, contact, esg_score, created_at`

// CompanyRepoImpl implements repository.CompanyRepository on PostgreSQL.
type CompanyRepoImpl struct {
	db *pgxpool.Pool
}

func NewCompanyRepo(db *pgxpool.Pool) *CompanyRepoImpl {
	return &CompanyRepoImpl{db: db}
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Industry, &c.Contact, &c.ESGScore, &c.CreatedAt); err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func (r *CompanyRepoImpl) List(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []*entity.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepoImpl) Create(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (name, industry, contact, esg_score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+companyColumns,
		c.Name, c.Industry, c.Contact, c.ESGScore,
	)
	return scanCompany(row)
}

func (r *CompanyRepoImpl) Get(ctx context.Context, id int64) (*entity.Company, error) {
	return scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
}

func (r *CompanyRepoImpl) Update(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE companies SET name = $1, industry = $2, contact = $3, esg_score = $4
		 WHERE id = $5
		 RETURNING `+companyColumns,
		c.Name, c.Industry, c.Contact, c.ESGScore, c.ID,
	)
	return scanCompany(row)
}

func (r *CompanyRepoImpl) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM companies WHERE id = $1`, id)
}
