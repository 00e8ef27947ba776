package exports

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
)

// PostgresRepository implements export history over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Export) (*models.Export, error) {
	query := `
		INSERT INTO exports (user_id, storage_key, row_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, e.OwnerID, e.StorageKey, e.Rows).Scan(&e.ID, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*models.Export, error) {
	query := `
		SELECT id, user_id, storage_key, row_count, created_at FROM exports
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select exports: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Export, 0)
	for rows.Next() {
		var item models.Export
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.StorageKey, &item.Rows, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
