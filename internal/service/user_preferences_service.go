package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"readease/internal/config"
	"readease/internal/domain"
	"readease/internal/domain/models"
	"readease/internal/domain/repositories"
	"readease/internal/domain/services"
	"readease/internal/metrics"
)

// UserPreferencesService implements the UserPreferencesService interface
type UserPreferencesService struct {
	prefsRepo repositories.UserPreferencesRepository
	backend   string
	logger    *slog.Logger
}

// NewUserPreferencesService creates a new user preferences service.
// backend names the storage implementation and is only used for metrics and logs.
func NewUserPreferencesService(
	prefsRepo repositories.UserPreferencesRepository,
	backend string,
	logger *slog.Logger,
) services.UserPreferencesService {
	return &UserPreferencesService{
		prefsRepo: prefsRepo,
		backend:   backend,
		logger:    logger,
	}
}

func validateUserID(userID string) error {
	err := validation.Validate(userID,
		validation.Required.Error("User ID is required"),
		validation.RuneLength(0, config.MaxUserIDLength).Error("User ID is too long"),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

// GetPreferences retrieves preferences for a user
func (s *UserPreferencesService) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if prefs == nil {
		return nil, &domain.NotFoundError{Message: "User preferences not found"}
	}
	return prefs, nil
}

// SavePreferences creates the record with defaults on first save and applies
// the patch on top of whatever is stored.
func (s *UserPreferencesService) SavePreferences(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.Save(ctx, userID, patch)
	if err != nil {
		metrics.PreferenceSaves.WithLabelValues(s.backend, metrics.OutcomeError).Inc()
		s.logger.Error("failed to save user preferences", "user_id", userID, "backend", s.backend, "error", err)
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	metrics.PreferenceSaves.WithLabelValues(s.backend, metrics.OutcomeOK).Inc()

	s.logger.Info("user preferences updated",
		"user_id", userID,
		"backend", s.backend,
		"has_theme", patch != nil && patch.Theme != nil,
		"has_font_family", patch != nil && patch.FontFamily != nil,
		"has_font_size", patch != nil && patch.FontSize != nil,
		"has_custom_settings", patch != nil && patch.CustomSettings.Present,
	)
	return prefs, nil
}
