package memory

import (
	"context"
	"sync"
	"time"

	"readease/internal/domain/models"
)

// UserPreferencesRepository keeps preferences in process memory. Records are
// lost on restart.
type UserPreferencesRepository struct {
	mu    sync.RWMutex
	items map[string]*models.UserPreferences
	now   func() time.Time
}

// NewUserPreferencesRepository creates an empty in-memory store.
func NewUserPreferencesRepository() *UserPreferencesRepository {
	return &UserPreferencesRepository{
		items: make(map[string]*models.UserPreferences),
		now:   time.Now,
	}
}

// GetByUserID returns a copy of the stored record, or nil when absent.
func (r *UserPreferencesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[userID].Clone(), nil
}

// Save upserts under the write lock so concurrent saves never lose fields.
func (r *UserPreferencesRepository) Save(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	current, ok := r.items[userID]
	if !ok {
		current = models.NewDefaultPreferences(userID, now)
	}
	current.Apply(patch, now)
	// The patch bytes belong to the caller.
	current = current.Clone()

	r.items[userID] = current
	return current.Clone(), nil
}
