package repositories

import (
	"context"

	"readease/internal/domain/models"
)

// UserPreferencesRepository defines the interface for user preferences storage.
// Implementations: in-memory (default), postgres, redis, sqlite.
type UserPreferencesRepository interface {
	// GetByUserID retrieves preferences for a specific user
	// Returns nil if no preferences exist (user hasn't saved any yet)
	GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error)

	// Save upserts user preferences.
	// If no record exists, defaults are created and the patch is applied on top.
	// If a record exists, the patch is overlaid onto it.
	// The read-modify-write must be atomic per user.
	Save(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error)
}
