// Package seed loads demo preference records into a store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"readease/internal/domain/models"
	"readease/internal/domain/repositories"
)

//go:embed demo_preferences.yaml
var demoPreferences []byte

// Fixture is one user's preferences as written in a seed file.
type Fixture struct {
	UserID         string         `yaml:"userId"`
	Theme          *string        `yaml:"theme"`
	FontFamily     *string        `yaml:"fontFamily"`
	FontSize       *int           `yaml:"fontSize"`
	LetterSpacing  *int           `yaml:"letterSpacing"`
	LineHeight     *int           `yaml:"lineHeight"`
	CustomSettings map[string]any `yaml:"customSettings"`
}

type fixtureFile struct {
	Users []Fixture `yaml:"users"`
}

// DemoFixtures returns the embedded demo users.
func DemoFixtures() ([]Fixture, error) {
	return ParseFixtures(demoPreferences)
}

// ParseFixtures decodes a seed file.
func ParseFixtures(data []byte) ([]Fixture, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, u := range f.Users {
		if u.UserID == "" {
			return nil, fmt.Errorf("seed entry %d: userId is required", i)
		}
	}
	return f.Users, nil
}

// Patch converts the fixture into a preferences patch.
func (f Fixture) Patch() (*models.PreferencesPatch, error) {
	patch := &models.PreferencesPatch{
		Theme:         f.Theme,
		FontFamily:    f.FontFamily,
		FontSize:      f.FontSize,
		LetterSpacing: f.LetterSpacing,
		LineHeight:    f.LineHeight,
	}
	if f.CustomSettings != nil {
		raw, err := json.Marshal(f.CustomSettings)
		if err != nil {
			return nil, fmt.Errorf("encode customSettings for %s: %w", f.UserID, err)
		}
		patch.CustomSettings = models.OptionalJSON{Present: true, Value: raw}
	}
	return patch, nil
}

// PreferencesSeeder writes fixtures through the repository so every backend
// gets the same upsert semantics as the API.
type PreferencesSeeder struct {
	repo   repositories.UserPreferencesRepository
	logger *slog.Logger
}

// NewPreferencesSeeder creates a new seeder
func NewPreferencesSeeder(repo repositories.UserPreferencesRepository, logger *slog.Logger) *PreferencesSeeder {
	return &PreferencesSeeder{repo: repo, logger: logger}
}

// Seed saves every fixture and returns how many were written.
func (s *PreferencesSeeder) Seed(ctx context.Context, fixtures []Fixture) (int, error) {
	for i, f := range fixtures {
		patch, err := f.Patch()
		if err != nil {
			return i, err
		}
		saved, err := s.repo.Save(ctx, f.UserID, patch)
		if err != nil {
			return i, fmt.Errorf("seed %s: %w", f.UserID, err)
		}
		s.logger.Info("seeded preferences", "user_id", saved.UserID, "theme", saved.Theme, "font_family", saved.FontFamily)
	}
	return len(fixtures), nil
}
