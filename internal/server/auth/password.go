package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const dummyPassword = "ledgerkeeper-dummy-password"

// PasswordHasher hashes and verifies passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher precomputes a dummy hash at the same cost so that
// lookups of unknown users can spend the same effort as real comparisons.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt init: %w", err)
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash returns a salted bcrypt hash of plain. Passwords over bcrypt's
// 72-byte limit are rejected with common.ErrValidation.
func (h *PasswordHasher) Hash(plain string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password too long", common.ErrValidation)
		}
		return nil, err
	}
	return hash, nil
}

// Verify reports whether plain matches hash.
func (h *PasswordHasher) Verify(plain string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}

// VerifyDummy burns one comparison against the dummy hash and always
// reports false.
func (h *PasswordHasher) VerifyDummy(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plain))
	return false
}
