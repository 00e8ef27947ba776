// Package transactions stores ledger rows. Every read and write other than
// Create is scoped by owner; rows of other users are indistinguishable from
// missing ones.
package transactions

import (
	"context"

	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	// ListByOwner returns rows ordered by date descending, then insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Transaction, error)
	// Update replaces all writable fields of the row matching tx.ID and tx.OwnerID.
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id, ownerID string) error
	// SumByCategory groups by exact category text. Order is unspecified.
	SumByCategory(ctx context.Context, ownerID string) ([]models.CategoryTotal, error)
}
