package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
)

// PostgresRepository implements ledger storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, user_id, title, amount, category, date, notes, created_at`

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, title, amount, category, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		tx.OwnerID, tx.Title, tx.Amount, tx.Category, tx.Date, tx.Notes).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tx, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions
		WHERE user_id = $1
		ORDER BY date COLLATE "C" DESC, seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select transactions: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		item, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Transaction, error) {
	query := `SELECT ` + selectColumns + ` FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	item, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, tx *models.Transaction) error {
	query := `
		UPDATE transactions
		SET title = $1, amount = $2, category = $3, date = $4, notes = $5
		WHERE id = $6 AND user_id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		tx.Title, tx.Amount, tx.Category, tx.Date, tx.Notes, tx.ID, tx.OwnerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectOneRow(res)
}

func (r *PostgresRepository) SumByCategory(ctx context.Context, ownerID string) ([]models.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount) FROM transactions
		WHERE user_id = $1
		GROUP BY category
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer rows.Close()

	result := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var item models.CategoryTotal
		if err := rows.Scan(&item.Category, &item.Total); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*models.Transaction, error) {
	var item models.Transaction
	if err := s.Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Amount,
		&item.Category, &item.Date, &item.Notes, &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
