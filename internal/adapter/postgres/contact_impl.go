package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

const contactColumns = `id, name, email, phone, company, role, designation, linkedin, created_at`

// ContactRepoImpl implements repository.ContactRepository on PostgreSQL.
type ContactRepoImpl struct {
	db *pgxpool.Pool
}

func NewContactRepo(db *pgxpool.Pool) *ContactRepoImpl {
	return &ContactRepoImpl{db: db}
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var c entity.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Role, &c.Designation, &c.LinkedIn, &c.CreatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return &c, nil
}

func (r *ContactRepoImpl) List(ctx context.Context) ([]*entity.Contact, error) {
	rows, err := r.db.Query(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*entity.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Create inserts the contact, adding a minimal company row first when the
// named company is unknown. Both writes share one transaction.
func (r *ContactRepoImpl) Create(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if c.Company != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO companies (name, industry, contact, esg_score)
			 VALUES ($1, '', $2, NULL)
			 ON CONFLICT (name) DO NOTHING`,
			c.Company, c.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("ensure company %q: %w", c.Company, err)
		}
	}

	created, err := scanContact(tx.QueryRow(ctx,
		`INSERT INTO contacts (name, email, phone, company, role, designation, linkedin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Company, c.Role, c.Designation, c.LinkedIn,
	))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ContactRepoImpl) Update(ctx context.Context, c *entity.Contact) (*entity.Contact, error) {
	return scanContact(r.db.QueryRow(ctx,
		`UPDATE contacts SET name = $1, email = $2, phone = $3, company = $4, role = $5, designation = $6, linkedin = $7
		 WHERE id = $8
		 RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Company, c.Role, c.Designation, c.LinkedIn, c.ID,
	))
}

func (r *ContactRepoImpl) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, r.db, `DELETE FROM contacts WHERE id = $1`, id)
}
