package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. The email check and the
// insert happen under one lock, so concurrent duplicates cannot both win.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]models.User), now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	user.CreatedAt = r.now().UTC()

	stored := *user
	stored.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.byEmail[user.Email] = stored

	return user, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &u, nil
}
