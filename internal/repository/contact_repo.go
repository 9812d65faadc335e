package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// ContactRepository defines persistence for contacts.
type ContactRepository interface {
	List(ctx context.Context) ([]*entity.Contact, error)
	// Create stores the contact. When the contact names a company that does not
	// exist yet, a minimal company row is created in the same transaction.
	Create(ctx context.Context, c *entity.Contact) (*entity.Contact, error)
	Update(ctx context.Context, c *entity.Contact) (*entity.Contact, error)
	Delete(ctx context.Context, id int64) error
}
