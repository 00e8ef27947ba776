package services

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/exports"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func discardLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard, "error")
}

// stubManager is a memory manager whose repositories can be swapped.
type stubManager struct {
	*repomanager.MemoryRepositoryManager
	users        users.Repository
	transactions transactions.Repository
	exports      exports.Repository
}

func newStubManager() *stubManager {
	return &stubManager{MemoryRepositoryManager: repomanager.NewMemoryRepositoryManager()}
}

func (m *stubManager) Users(db dbx.DBTX) users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.MemoryRepositoryManager.Users(db)
}

func (m *stubManager) Transactions(db dbx.DBTX) transactions.Repository {
	if m.transactions != nil {
		return m.transactions
	}
	return m.MemoryRepositoryManager.Transactions(db)
}

func (m *stubManager) Exports(db dbx.DBTX) exports.Repository {
	if m.exports != nil {
		return m.exports
	}
	return m.MemoryRepositoryManager.Exports(db)
}

type failingExports struct{ err error }

func (f failingExports) Create(context.Context, *models.Export) (*models.Export, error) {
	return nil, f.err
}
func (f failingExports) ListByOwner(context.Context, string, int) ([]*models.Export, error) {
	return nil, f.err
}

type failingUsers struct{ err error }

func (f failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, f.err }
func (f failingUsers) FindByEmail(context.Context, string) (*models.User, error)  { return nil, f.err }

// countingTransactions records every store access.
type countingTransactions struct {
	transactions.Repository
	calls atomic.Int32
	err   error
}

func (c *countingTransactions) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Repository.Create(ctx, tx)
}

func (c *countingTransactions) ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Repository.ListByOwner(ctx, ownerID)
}

func (c *countingTransactions) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Transaction, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Repository.GetByIDAndOwner(ctx, id, ownerID)
}

func (c *countingTransactions) Update(ctx context.Context, tx *models.Transaction) error {
	c.calls.Add(1)
	if c.err != nil {
		return c.err
	}
	return c.Repository.Update(ctx, tx)
}

func (c *countingTransactions) Delete(ctx context.Context, id, ownerID string) error {
	c.calls.Add(1)
	if c.err != nil {
		return c.err
	}
	return c.Repository.Delete(ctx, id, ownerID)
}

func (c *countingTransactions) SumByCategory(ctx context.Context, ownerID string) ([]models.CategoryTotal, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.Repository.SumByCategory(ctx, ownerID)
}

func newTestUserService(t *testing.T, m repomanager.RepositoryManager) (*UserService, *auth.TokenIssuer) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	return NewUserService(m, hasher, issuer, discardLogger()), issuer
}
