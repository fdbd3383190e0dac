package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"readease/internal/domain/models"
)

const (
	keyPrefix       = "prefs:"
	maxSaveAttempts = 10
)

// ErrContention is returned when a save keeps losing the optimistic lock.
var ErrContention = errors.New("preferences save aborted after repeated concurrent modification")

// UserPreferencesRepository stores each user's preferences as one JSON value
// under prefs:<userId>.
type UserPreferencesRepository struct {
	rdb    goredis.UniversalClient
	logger *slog.Logger
	now    func() time.Time
}

// NewClient parses a redis:// URL and verifies the connection.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// NewUserPreferencesRepository wraps an existing client.
func NewUserPreferencesRepository(rdb goredis.UniversalClient, logger *slog.Logger) *UserPreferencesRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserPreferencesRepository{rdb: rdb, logger: logger, now: time.Now}
}

func key(userID string) string { return keyPrefix + userID }

// GetByUserID returns nil when the user has no record.
func (r *UserPreferencesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs, err := load(ctx, r.rdb, userID)
	if err != nil {
		return nil, fmt.Errorf("get user preferences: %w", err)
	}
	return prefs, nil
}

// Save runs the read-modify-write inside WATCH/MULTI and retries when another
// writer touched the key in between.
func (r *UserPreferencesRepository) Save(ctx context.Context, userID string, patch *models.PreferencesPatch) (*models.UserPreferences, error) {
	k := key(userID)
	var saved *models.UserPreferences

	txf := func(tx *goredis.Tx) error {
		current, err := load(ctx, tx, userID)
		if err != nil {
			return err
		}
		now := r.now().UTC()
		if current == nil {
			current = models.NewDefaultPreferences(userID, now)
		}
		current.Apply(patch, now)

		data, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode preferences: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, k, data, 0)
			return nil
		})
		if err == nil {
			saved = current
		}
		return err
	}

	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		err := r.rdb.Watch(ctx, txf, k)
		if err == nil {
			return saved, nil
		}
		if errors.Is(err, goredis.TxFailedErr) {
			r.logger.Debug("preferences save conflict, retrying", "user_id", userID, "attempt", attempt)
			continue
		}
		return nil, fmt.Errorf("save user preferences: %w", err)
	}
	return nil, ErrContention
}

func load(ctx context.Context, c goredis.Cmdable, userID string) (*models.UserPreferences, error) {
	data, err := c.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var prefs models.UserPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if string(prefs.CustomSettings) == "null" {
		prefs.CustomSettings = nil
	}
	return &prefs, nil
}
