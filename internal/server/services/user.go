// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/dbx"
	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint an access token
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenIssuer
	log         logging.Logger
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(m repomanager.RepositoryManager, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, log logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		log:         log.With("module", "users"),
	}
}

// Register creates a new user. An already registered email yields
// common.ErrDuplicateEmail and leaves the store unchanged.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, err
		}
		return nil, s.internal(ctx, "hash password", err)
	}

	var created *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.FindByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateEmail
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		created, err = repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.log.Info(ctx, "registration rejected", "reason", "duplicate email")
			return nil, common.ErrDuplicateEmail
		}
		return nil, s.internal(ctx, "create user", err)
	}

	s.log.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// Login verifies the password and returns a signed access token. Unknown
// email and wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.repomanager.DB())

	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyDummy(password)
			s.log.Warn(ctx, "login failed", "reason", "unknown email")
			return "", common.ErrInvalidCredentials
		}
		return "", s.internal(ctx, "find user", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Warn(ctx, "login failed", "reason", "wrong password", "user_id", user.ID)
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", s.internal(ctx, "issue token", err)
	}
	return token, nil
}

func (s *UserService) internal(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, op+" failed", "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}
