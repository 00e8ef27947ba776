package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryManager_SharedStores(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx))
	require.NoError(t, m.Ping(ctx))
	assert.Nil(t, m.DB())

	err := m.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := m.Users(tx).Create(ctx, &models.User{Email: "a@x.io"})
		return err
	})
	require.NoError(t, err)

	u, err := m.Users(m.DB()).FindByEmail(ctx, "a@x.io")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	assert.Same(t, m.Transactions(nil), m.Transactions(m.DB()))
	assert.Same(t, m.Exports(nil), m.Exports(m.DB()))
	require.NoError(t, m.Close())
}

func TestMemoryManager_WithTxPropagatesError(t *testing.T) {
	m := NewMemoryRepositoryManager()
	boom := errors.New("boom")

	err := m.WithTx(context.Background(), func(context.Context, dbx.DBTX) error { return boom })
	assert.ErrorIs(t, err, boom)
}
