package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/exports"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager serves process-local repositories. The handle
// passed to the repository getters is ignored; every caller shares the
// same stores. WithTx serializes its callbacks.
type MemoryRepositoryManager struct {
	txMu         sync.Mutex
	users        *users.MemoryRepository
	transactions *transactions.MemoryRepository
	exports      *exports.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:        users.NewMemoryRepository(),
		transactions: transactions.NewMemoryRepository(),
		exports:      exports.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *MemoryRepositoryManager) Close() error                        { return nil }
func (m *MemoryRepositoryManager) DB() dbx.DBTX                        { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Transactions(dbx.DBTX) transactions.Repository {
	return m.transactions
}

func (m *MemoryRepositoryManager) Exports(dbx.DBTX) exports.Repository { return m.exports }
