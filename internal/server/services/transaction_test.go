package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(title, amount, category, date string) models.TransactionFields {
	return models.TransactionFields{
		Title: title, Amount: decimal.RequireFromString(amount), Category: category, Date: date,
	}
}

func newTxService() (*TransactionService, *stubManager) {
	m := newStubManager()
	return NewTransactionService(m, discardLogger()), m
}

func TestTransactions_CreateStampsOwner(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", fields("Lunch", "12.5", "food", "2024-05-01"))
	require.NoError(t, err)
	assert.Equal(t, "u1", created.OwnerID)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", got.Title)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.50")))
}

func TestTransactions_CrossUserIsolation(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "alice", fields("a", "1", "x", "2024-01-01"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, "bob", fields("b", "2", "x", "2024-01-01"))
	require.NoError(t, err)

	list, err := svc.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Title)

	_, err = svc.Get(ctx, "bob", a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Update(ctx, "bob", a.ID, fields("hijack", "0", "", "")), common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "bob", a.ID), common.ErrorNotFound)

	still, err := svc.Get(ctx, "alice", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", still.Title)
}

func TestTransactions_ListOrderedByDateDesc(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	for _, d := range []string{"2024-01-02", "2024-03-01", "2023-12-31", "2024-03-01"} {
		_, err := svc.Create(ctx, "u1", fields(d, "1", "x", d))
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)

	dates := make([]string, 0, len(list))
	for _, tx := range list {
		dates = append(dates, tx.Date)
	}
	assert.Equal(t, []string{"2024-03-01", "2024-03-01", "2024-01-02", "2023-12-31"}, dates)
}

func TestTransactions_ListEmpty(t *testing.T) {
	svc, _ := newTxService()

	list, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTransactions_UpdateIsFullReplace(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", models.TransactionFields{
		Title: "a", Amount: decimal.NewFromInt(3), Category: "food", Date: "2024-01-01", Notes: "n",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, "u1", created.ID, models.TransactionFields{Title: "b"}))

	got, err := svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
	assert.True(t, got.Amount.IsZero())
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Notes)
}

func TestTransactions_DeleteThenGone(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", fields("a", "1", "x", "d"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "u1", created.ID), common.ErrorNotFound)
	_, err = svc.Get(ctx, "u1", created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTransactions_MalformedIDSkipsStore(t *testing.T) {
	svc, m := newTxService()
	counter := &countingTransactions{Repository: m.MemoryRepositoryManager.Transactions(nil)}
	m.transactions = counter
	ctx := context.Background()

	_, err := svc.Get(ctx, "u1", "42")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, svc.Update(ctx, "u1", "not-a-uuid", models.TransactionFields{}), common.ErrorNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "u1", ""), common.ErrorNotFound)

	assert.Zero(t, counter.calls.Load())

	_, err = svc.Get(ctx, "u1", uuid.NewString())
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, int32(1), counter.calls.Load())
}

func TestTransactions_EmptyOwnerRejected(t *testing.T) {
	svc, m := newTxService()
	counter := &countingTransactions{Repository: m.MemoryRepositoryManager.Transactions(nil)}
	m.transactions = counter
	ctx := context.Background()

	_, err := svc.Create(ctx, "", fields("a", "1", "x", "d"))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = svc.List(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	_, err = svc.Summarize(ctx, "")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	assert.Zero(t, counter.calls.Load())
}

func TestTransactions_StoreFailureIsInternal(t *testing.T) {
	svc, m := newTxService()
	m.transactions = &countingTransactions{err: errors.New("db down")}
	ctx := context.Background()

	_, err := svc.List(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrorInternal)
	_, err = svc.Summarize(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrorInternal)
	err = svc.Update(ctx, "u1", uuid.NewString(), models.TransactionFields{})
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestSummarize_Empty(t *testing.T) {
	svc, _ := newTxService()

	s, err := svc.Summarize(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, s.TotalExpense.IsZero())
	assert.NotNil(t, s.CategoryBreakdown)
	assert.Empty(t, s.CategoryBreakdown)
}

func TestSummarize_GroupsAndTotals(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	for _, f := range []models.TransactionFields{
		fields("a", "10", "food", "d"),
		fields("b", "5", "food", "d"),
		fields("c", "2", "travel", "d"),
	} {
		_, err := svc.Create(ctx, "u1", f)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "u2", fields("z", "1000", "food", "d"))
	require.NoError(t, err)

	s, err := svc.Summarize(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, "17", s.TotalExpense.String())
	require.Len(t, s.CategoryBreakdown, 2)
	assert.Equal(t, "food", s.CategoryBreakdown[0].Category)
	assert.Equal(t, "15", s.CategoryBreakdown[0].Total.String())
	assert.Equal(t, "travel", s.CategoryBreakdown[1].Category)
	assert.Equal(t, "2", s.CategoryBreakdown[1].Total.String())
}

func TestSummarize_SignedAndFractional(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	for _, f := range []models.TransactionFields{
		fields("pay", "-100.10", "income", "d"),
		fields("a", "0.1", "food", "d"),
		fields("b", "0.2", "food", "d"),
		fields("c", "1", "Food", "d"),
	} {
		_, err := svc.Create(ctx, "u1", f)
		require.NoError(t, err)
	}

	s, err := svc.Summarize(ctx, "u1")
	require.NoError(t, err)

	got := map[string]string{}
	sum := decimal.Zero
	for _, g := range s.CategoryBreakdown {
		got[g.Category] = g.Total.String()
		sum = sum.Add(g.Total)
	}
	assert.Equal(t, map[string]string{"income": "-100.1", "food": "0.3", "Food": "1"}, got)
	assert.True(t, s.TotalExpense.Equal(sum))
	assert.Equal(t, "-98.8", s.TotalExpense.String())
}

func TestTransactions_AmountOutOfRangeRejected(t *testing.T) {
	svc, _ := newTxService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", fields("huge", "1e50000000", "", ""))
	assert.True(t, errors.Is(err, common.ErrValidation))

	created, err := svc.Create(ctx, "u1", fields("ok", "1", "", ""))
	require.NoError(t, err)

	err = svc.Update(ctx, "u1", created.ID, fields("tiny", "1e-50000000", "", ""))
	assert.True(t, errors.Is(err, common.ErrValidation))

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ok", items[0].Title)
}
