// Package users stores registered accounts. Email is the only lookup key.
package users

import (
	"context"

	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID and CreatedAt. It returns
	// common.ErrDuplicateEmail when the email is already registered.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail returns common.ErrorNotFound on a miss.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
