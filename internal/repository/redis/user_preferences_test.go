package redis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"readease/internal/domain/models"
)

// newTestRepository creates a repository backed by miniredis for testing.
func newTestRepository(t *testing.T) (*UserPreferencesRepository, *miniredis.Miniredis) {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	rdb, err := NewClient(context.Background(), "redis://"+mini.Addr())
	if err != nil {
		t.Fatalf("failed to create redis client: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })

	return NewUserPreferencesRepository(rdb, slog.New(slog.NewTextHandler(io.Discard, nil))), mini
}

func TestUserPreferences_GetMissing(t *testing.T) {
	repo, _ := newTestRepository(t)
	got, err := repo.GetByUserID(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestUserPreferences_SaveAndUpdate(t *testing.T) {
	repo, mini := newTestRepository(t)
	ctx := context.Background()

	dark := "dark"
	first, err := repo.Save(ctx, "u1", &models.PreferencesPatch{Theme: &dark})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first.Theme != "dark" || first.FontFamily != models.DefaultFontFamily {
		t.Fatalf("unexpected first save: %+v", first)
	}
	if !mini.Exists("prefs:u1") {
		t.Fatal("expected key prefs:u1")
	}

	size := 20
	second, err := repo.Save(ctx, "u1", &models.PreferencesPatch{FontSize: &size})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if second.Theme != "dark" || second.FontSize != 20 {
		t.Fatalf("expected dark/20, got %+v", second)
	}

	got, err := repo.GetByUserID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if got.Theme != "dark" || got.FontSize != 20 || got.CustomSettings != nil {
		t.Fatalf("unexpected stored record: %+v", got)
	}
}

func TestUserPreferences_CustomSettings(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, "u1", &models.PreferencesPatch{
		CustomSettings: models.OptionalJSON{Present: true, Value: json.RawMessage(`{"dyslexia":true}`)},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, _ := repo.GetByUserID(ctx, "u1")
	if string(got.CustomSettings) != `{"dyslexia":true}` {
		t.Fatalf("CustomSettings = %s", got.CustomSettings)
	}

	_, _ = repo.Save(ctx, "u1", &models.PreferencesPatch{CustomSettings: models.OptionalJSON{Present: true}})
	got, _ = repo.GetByUserID(ctx, "u1")
	if got.CustomSettings != nil {
		t.Fatalf("expected cleared CustomSettings, got %s", got.CustomSettings)
	}
}

func TestUserPreferences_ConcurrentSaves(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	dark := "dark"
	font := "opendyslexic"
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := repo.Save(ctx, "u1", &models.PreferencesPatch{Theme: &dark})
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := repo.Save(ctx, "u1", &models.PreferencesPatch{FontFamily: &font})
		errs <- err
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, _ := repo.GetByUserID(ctx, "u1")
	if got.Theme != "dark" || got.FontFamily != "opendyslexic" {
		t.Fatalf("lost update: %+v", got)
	}
}

func TestUserPreferences_CorruptValue(t *testing.T) {
	repo, mini := newTestRepository(t)
	if err := mini.Set("prefs:u1", "not json"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.GetByUserID(context.Background(), "u1"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestNewClient_BadURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "not-a-url"); err == nil {
		t.Fatal("expected parse error")
	}
}
