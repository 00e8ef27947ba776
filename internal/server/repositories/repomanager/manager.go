package repomanager

import (
	"context"

	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/exports"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a handle and owns the
// storage lifecycle. DB returns the root handle; WithTx runs fn with a
// transactional one.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	DB() dbx.DBTX
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error

	Users(db dbx.DBTX) users.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Exports(db dbx.DBTX) exports.Repository
}
