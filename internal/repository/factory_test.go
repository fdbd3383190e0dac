package repository

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"readease/internal/config"
)

func testLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestOpen(t *testing.T) {
	mini := miniredis.RunT(t)

	tests := []struct {
		name    string
		cfg     *config.Config
		backend string
		wantErr bool
	}{
		{"default memory", &config.Config{}, "memory", false},
		{"memory", &config.Config{PreferencesBackend: "memory"}, "memory", false},
		{"redis", &config.Config{PreferencesBackend: "redis", RedisURL: "redis://" + mini.Addr()}, "redis", false},
		{"sqlite", &config.Config{PreferencesBackend: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "p.db"), TablePrefix: "test_"}, "sqlite", false},
		{"sqlite bad prefix", &config.Config{PreferencesBackend: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "q.db"), TablePrefix: "a-b"}, "", true},
		{"unknown", &config.Config{PreferencesBackend: "mongo"}, "", true},
		{"bad redis url", &config.Config{PreferencesBackend: "redis", RedisURL: "::"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(context.Background(), tt.cfg, testLogger())
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer store.Close()
			if store.Backend != tt.backend {
				t.Errorf("Backend = %q, want %q", store.Backend, tt.backend)
			}
			if store.Preferences == nil {
				t.Error("Preferences is nil")
			}
		})
	}
}
