package services

import (
	"context"

	"readease/internal/domain/models"
)

// UserPreferencesService defines the business logic for user preferences operations
type UserPreferencesService interface {
	// GetPreferences retrieves preferences for a user
	// Returns a NotFoundError if the user has never saved preferences
	GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error)

	// SavePreferences creates or updates preferences (partial update)
	SavePreferences(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error)
}
