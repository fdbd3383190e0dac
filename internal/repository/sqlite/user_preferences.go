package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"readease/internal/domain/models"
)

// migrations are applied in order; %[1]s is the prefixed table name.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS %[1]s (
		user_id         TEXT PRIMARY KEY,
		theme           TEXT    NOT NULL,
		font_family     TEXT    NOT NULL,
		font_size       INTEGER NOT NULL,
		letter_spacing  INTEGER NOT NULL,
		line_height     INTEGER NOT NULL,
		custom_settings TEXT,
		created_at      TEXT    NOT NULL,
		updated_at      TEXT    NOT NULL
	)`,
}

// UserPreferencesRepository stores preferences in a local SQLite file.
type UserPreferencesRepository struct {
	db        *sql.DB
	table     string
	now       func() time.Time
	selectSQL string
	upsertSQL string
}

// Open creates the database file and its directory if needed and applies
// migrations. The table is named <tablePrefix>user_preferences, matching the
// postgres backend.
func Open(ctx context.Context, path, tablePrefix string) (*UserPreferencesRepository, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	if !validPrefix(tablePrefix) {
		return nil, fmt.Errorf("invalid table prefix %q", tablePrefix)
	}
	table := tablePrefix + "user_preferences"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection serializes writers, which makes Save atomic per user.
	db.SetMaxOpenConns(1)
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(stmt, table)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return &UserPreferencesRepository{
		db:        db,
		table:     table,
		now:       time.Now,
		selectSQL: fmt.Sprintf(selectPrefs, table),
		upsertSQL: fmt.Sprintf(upsertPrefs, table),
	}, nil
}

// Table returns the prefixed table name.
func (r *UserPreferencesRepository) Table() string { return r.table }

func validPrefix(prefix string) bool {
	for _, c := range prefix {
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Close releases the database handle.
func (r *UserPreferencesRepository) Close() error { return r.db.Close() }

// withTx commits on nil error and rolls back otherwise.
func (r *UserPreferencesRepository) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	selectPrefs = `SELECT user_id, theme, font_family, font_size, letter_spacing, line_height,
	custom_settings, created_at, updated_at FROM %s WHERE user_id = ?`

	upsertPrefs = `INSERT INTO %s
	(user_id, theme, font_family, font_size, letter_spacing, line_height, custom_settings, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		theme = excluded.theme,
		font_family = excluded.font_family,
		font_size = excluded.font_size,
		letter_spacing = excluded.letter_spacing,
		line_height = excluded.line_height,
		custom_settings = excluded.custom_settings,
		updated_at = excluded.updated_at`
)

// GetByUserID returns nil when the user has no record.
func (r *UserPreferencesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs, err := r.scan(ctx, r.db, userID)
	if err != nil {
		return nil, fmt.Errorf("get user preferences: %w", err)
	}
	return prefs, nil
}

// Save upserts inside a transaction.
func (r *UserPreferencesRepository) Save(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error) {
	var saved *models.UserPreferences
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		current, err := r.scan(ctx, tx, userID)
		if err != nil {
			return err
		}
		now := r.now().UTC()
		if current == nil {
			current = models.NewDefaultPreferences(userID, now)
		}
		current.Apply(patch, now)

		var custom any
		if current.CustomSettings != nil {
			custom = string(current.CustomSettings)
		}
		_, err = tx.ExecContext(ctx, r.upsertSQL,
			current.UserID, current.Theme, current.FontFamily, current.FontSize,
			current.LetterSpacing, current.LineHeight, custom,
			current.CreatedAt.Format(time.RFC3339Nano), current.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
		saved = current
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save user preferences: %w", err)
	}
	return saved, nil
}

func (r *UserPreferencesRepository) scan(ctx context.Context, q queryRower, userID string) (*models.UserPreferences, error) {
	var (
		prefs            models.UserPreferences
		custom           sql.NullString
		created, updated string
	)
	err := q.QueryRowContext(ctx, r.selectSQL, userID).Scan(
		&prefs.UserID, &prefs.Theme, &prefs.FontFamily, &prefs.FontSize,
		&prefs.LetterSpacing, &prefs.LineHeight, &custom, &created, &updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if custom.Valid {
		prefs.CustomSettings = json.RawMessage(custom.String)
	}
	if prefs.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if prefs.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &prefs, nil
}
