package exports

import (
	"context"

	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
)

// Repository is the history of uploaded ledger exports.
type Repository interface {
	// Create stores e and fills its ID and CreatedAt.
	Create(ctx context.Context, e *models.Export) (*models.Export, error)
	// ListByOwner returns up to limit exports of ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]*models.Export, error)
}
