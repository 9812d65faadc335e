package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/crm-service/internal/entity"
)

// UserRepoImpl implements repository.UserRepository on PostgreSQL.
type UserRepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepoImpl {
	return &UserRepoImpl{db: db}
}

func (r *UserRepoImpl) CreatePending(ctx context.Context, u *entity.PendingUser) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO pending_users (name, email, password_hash) VALUES ($1, $2, $3)`,
		u.Name, u.Email, u.PasswordHash,
	)
	return translateErr(err)
}

func (r *UserRepoImpl) ListPending(ctx context.Context) ([]*entity.PendingUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, email, requested_at FROM pending_users ORDER BY requested_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*entity.PendingUser{}
	for rows.Next() {
		var u entity.PendingUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RequestedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Approve copies the pending row into users and removes it, in one transaction.
func (r *UserRepoImpl) Approve(ctx context.Context, pendingID int64, role string) (*entity.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var p entity.PendingUser
	err = tx.QueryRow(ctx,
		`SELECT id, name, email, password_hash FROM pending_users WHERE id = $1 FOR UPDATE`,
		pendingID,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash)
	if err != nil {
		return nil, translateErr(err)
	}

	u := entity.User{Name: p.Name, Email: p.Email, Role: role}
	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Name, p.Email, role, p.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		return nil, fmt.Errorf("activate user %d: %w", pendingID, translateErr(err))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM pending_users WHERE id = $1`, pendingID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepoImpl) DeletePending(ctx context.Context, pendingID int64) error {
	return execOne(ctx, r.db, `DELETE FROM pending_users WHERE id = $1`, pendingID)
}

// Create inserts an active account directly, bypassing approval.
func (r *UserRepoImpl) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	out := *u
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email, role, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`,
		u.Name, u.Email, u.Role, u.PasswordHash,
	).Scan(&out.ID)
	if err != nil {
		return nil, translateErr(err)
	}
	return &out, nil
}

func (r *UserRepoImpl) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash FROM users WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash)
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (r *UserRepoImpl) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
