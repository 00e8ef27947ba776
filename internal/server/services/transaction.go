package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionService is the owner-scoped ledger. Every method takes the
// owner id resolved by the access gateway; ids in payloads are ignored.
type TransactionService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTransactionService(m repomanager.RepositoryManager, log logging.Logger) *TransactionService {
	return &TransactionService{repomanager: m, log: log.With("module", "transactions")}
}

func (s *TransactionService) Create(ctx context.Context, ownerID string, f models.TransactionFields) (*models.Transaction, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	tx := &models.Transaction{OwnerID: ownerID}
	applyFields(tx, f)

	created, err := s.repomanager.Transactions(s.repomanager.DB()).Create(ctx, tx)
	if err != nil {
		return nil, s.fail(ctx, "create transaction", err)
	}
	s.log.Debug(ctx, "transaction created", "user_id", ownerID, "id", created.ID)
	return created, nil
}

func (s *TransactionService) List(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}

	items, err := s.repomanager.Transactions(s.repomanager.DB()).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "list transactions", err)
	}
	return items, nil
}

func (s *TransactionService) Get(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	item, err := s.repomanager.Transactions(s.repomanager.DB()).GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "get transaction", err)
	}
	return item, nil
}

// Update replaces every writable field of the owner's transaction id.
func (s *TransactionService) Update(ctx context.Context, ownerID, id string, f models.TransactionFields) error {
	if ownerID == "" {
		return common.ErrUnauthenticated
	}
	if !validID(id) {
		return common.ErrorNotFound
	}
	if err := f.Validate(); err != nil {
		return err
	}

	tx := &models.Transaction{ID: id, OwnerID: ownerID}
	applyFields(tx, f)

	if err := s.repomanager.Transactions(s.repomanager.DB()).Update(ctx, tx); err != nil {
		return s.fail(ctx, "update transaction", err)
	}
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, ownerID, id string) error {
	if ownerID == "" {
		return common.ErrUnauthenticated
	}
	if !validID(id) {
		return common.ErrorNotFound
	}

	if err := s.repomanager.Transactions(s.repomanager.DB()).Delete(ctx, id, ownerID); err != nil {
		return s.fail(ctx, "delete transaction", err)
	}
	return nil
}

// Summarize aggregates the owner's ledger from a single grouped read.
// The total is the sum of the group sums; groups are sorted by category.
func (s *TransactionService) Summarize(ctx context.Context, ownerID string) (*models.Summary, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthenticated
	}

	groups, err := s.repomanager.Transactions(s.repomanager.DB()).SumByCategory(ctx, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "summarize transactions", err)
	}

	slices.SortFunc(groups, func(a, b models.CategoryTotal) int {
		return cmp.Compare(a.Category, b.Category)
	})

	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Total)
	}

	if groups == nil {
		groups = []models.CategoryTotal{}
	}
	return &models.Summary{TotalExpense: total, CategoryBreakdown: groups}, nil
}

// fail passes NotFound through and folds everything else into ErrorInternal.
func (s *TransactionService) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.log.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}

func applyFields(tx *models.Transaction, f models.TransactionFields) {
	tx.Title = f.Title
	tx.Amount = f.Amount
	tx.Category = f.Category
	tx.Date = f.Date
	tx.Notes = f.Notes
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
