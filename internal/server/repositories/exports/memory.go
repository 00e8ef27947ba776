package exports

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps export history in insertion order.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows []models.Export
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, e *models.Export) (*models.Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()
	r.rows = append(r.rows, *e)
	return e, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*models.Export, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Export, 0)
	for i := len(r.rows) - 1; i >= 0 && len(result) < limit; i-- {
		if r.rows[i].OwnerID == ownerID {
			e := r.rows[i]
			result = append(result, &e)
		}
	}
	return result, nil
}
