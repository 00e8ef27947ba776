package transactions

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type memoryRow struct {
	tx  models.Transaction
	seq uint64
}

// MemoryRepository keeps ledger rows in process memory behind an RWMutex.
// The seq counter mirrors the BIGSERIAL column used for tie-breaks.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*memoryRow
	seq  uint64
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]*memoryRow), now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx.ID = uuid.NewString()
	tx.CreatedAt = r.now().UTC()
	r.seq++
	r.rows[tx.ID] = &memoryRow{tx: *tx, seq: r.seq}

	return tx, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	owned := make([]*memoryRow, 0)
	for _, row := range r.rows {
		if row.tx.OwnerID == ownerID {
			owned = append(owned, row)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(owned, func(a, b *memoryRow) int {
		if c := cmp.Compare(b.tx.Date, a.tx.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	result := make([]*models.Transaction, 0, len(owned))
	for _, row := range owned {
		item := row.tx
		result = append(result, &item)
	}
	return result, nil
}

func (r *MemoryRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok || row.tx.OwnerID != ownerID {
		return nil, common.ErrorNotFound
	}
	item := row.tx
	return &item, nil
}

func (r *MemoryRepository) Update(ctx context.Context, tx *models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[tx.ID]
	if !ok || row.tx.OwnerID != tx.OwnerID {
		return common.ErrorNotFound
	}
	row.tx.Title = tx.Title
	row.tx.Amount = tx.Amount
	row.tx.Category = tx.Category
	row.tx.Date = tx.Date
	row.tx.Notes = tx.Notes
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok || row.tx.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepository) SumByCategory(ctx context.Context, ownerID string) ([]models.CategoryTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := make(map[string]decimal.Decimal)
	for _, row := range r.rows {
		if row.tx.OwnerID != ownerID {
			continue
		}
		sums[row.tx.Category] = sums[row.tx.Category].Add(row.tx.Amount)
	}

	result := make([]models.CategoryTotal, 0, len(sums))
	for category, total := range sums {
		result = append(result, models.CategoryTotal{Category: category, Total: total})
	}
	return result, nil
}
