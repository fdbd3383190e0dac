package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"readease/internal/domain/models"
	"readease/internal/domain/repositories"
)

// PostgresUserPreferencesRepository implements the UserPreferencesRepository interface
type PostgresUserPreferencesRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
	tx     repositories.TransactionManager
	now    func() time.Time
}

// NewUserPreferencesRepository creates a new PostgresUserPreferencesRepository
func NewUserPreferencesRepository(config *RepositoryConfig) *PostgresUserPreferencesRepository {
	return &PostgresUserPreferencesRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
		tx:     NewTransactionManager(config.Pool, config.Logger),
		now:    time.Now,
	}
}

// EnsureSchema creates the preferences table when it does not exist yet.
func (r *PostgresUserPreferencesRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			user_id         TEXT PRIMARY KEY,
			theme           TEXT        NOT NULL,
			font_family     TEXT        NOT NULL,
			font_size       INTEGER     NOT NULL,
			letter_spacing  INTEGER     NOT NULL,
			line_height     INTEGER     NOT NULL,
			custom_settings JSONB,
			created_at      TIMESTAMPTZ NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL
		)
	`, r.tables.UserPreferences)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query)
	// Two instances racing on CREATE TABLE IF NOT EXISTS can collide on pg_type.
	if err != nil && !IsPgDuplicateError(err) {
		return fmt.Errorf("create %s: %w", r.tables.UserPreferences, err)
	}
	return nil
}

// GetByUserID retrieves preferences for a specific user
func (r *PostgresUserPreferencesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	query := fmt.Sprintf(`
		SELECT user_id, theme, font_family, font_size, letter_spacing, line_height,
		       custom_settings, created_at, updated_at
		FROM %s
		WHERE user_id = $1
	`, r.tables.UserPreferences)

	prefs, err := r.scanOne(ctx, query, userID)
	if err != nil {
		if IsPgNoRowsError(err) {
			// No preferences exist yet - return nil (not an error)
			return nil, nil
		}
		return nil, fmt.Errorf("get user preferences: %w", err)
	}
	return prefs, nil
}

// Save creates the default record when missing, then overlays the patch.
// The row is locked for the read-modify-write so concurrent saves for the
// same user serialize.
func (r *PostgresUserPreferencesRepository) Save(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error) {
	var saved *models.UserPreferences

	err := r.tx.ExecTx(ctx, func(txCtx context.Context) error {
		now := r.now().UTC()
		defaults := models.NewDefaultPreferences(userID, now)

		insert := fmt.Sprintf(`
			INSERT INTO %s (user_id, theme, font_family, font_size, letter_spacing, line_height,
			                custom_settings, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (user_id) DO NOTHING
		`, r.tables.UserPreferences)
		if _, err := GetExecutor(txCtx, r.pool).Exec(txCtx, insert,
			defaults.UserID,
			defaults.Theme,
			defaults.FontFamily,
			defaults.FontSize,
			defaults.LetterSpacing,
			defaults.LineHeight,
			jsonParam(defaults.CustomSettings),
			defaults.CreatedAt,
			defaults.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert default preferences: %w", err)
		}

		lock := fmt.Sprintf(`
			SELECT user_id, theme, font_family, font_size, letter_spacing, line_height,
			       custom_settings, created_at, updated_at
			FROM %s
			WHERE user_id = $1
			FOR UPDATE
		`, r.tables.UserPreferences)
		current, err := r.scanOne(txCtx, lock, userID)
		if err != nil {
			return fmt.Errorf("lock user preferences: %w", err)
		}

		current.Apply(patch, now)

		update := fmt.Sprintf(`
			UPDATE %s
			SET theme = $2, font_family = $3, font_size = $4, letter_spacing = $5,
			    line_height = $6, custom_settings = $7, updated_at = $8
			WHERE user_id = $1
			RETURNING user_id, theme, font_family, font_size, letter_spacing, line_height,
			          custom_settings, created_at, updated_at
		`, r.tables.UserPreferences)
		saved, err = r.scanOne(txCtx, update,
			current.UserID,
			current.Theme,
			current.FontFamily,
			current.FontSize,
			current.LetterSpacing,
			current.LineHeight,
			jsonParam(current.CustomSettings),
			current.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update user preferences: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("user preferences saved", "user_id", userID, "table", r.tables.UserPreferences)
	return saved, nil
}

func (r *PostgresUserPreferencesRepository) scanOne(ctx context.Context, query string, args ...interface{}) (*models.UserPreferences, error) {
	var prefs models.UserPreferences
	var custom []byte
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&prefs.UserID,
		&prefs.Theme,
		&prefs.FontFamily,
		&prefs.FontSize,
		&prefs.LetterSpacing,
		&prefs.LineHeight,
		&custom,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if custom != nil {
		prefs.CustomSettings = json.RawMessage(custom)
	}
	return &prefs, nil
}

// jsonParam maps an unset JSON value to SQL NULL.
func jsonParam(raw json.RawMessage) interface{} {
	if raw == nil {
		return nil
	}
	return string(raw)
}
