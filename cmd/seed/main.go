package main

import (
	"context"
	"flag"
	"log"
	"os"

	"readease/internal/config"
	"readease/internal/repository"
	"readease/internal/seed"
)

func main() {
	file := flag.String("file", "", "YAML seed file (defaults to the embedded demo users)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// SAFETY: demo users never belong in production
	if cfg.Environment == "prod" {
		log.Fatalf("🚫 BLOCKED: refusing to seed demo preferences in production environment")
	}

	logger, logCloser, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	fixtures, err := seed.DemoFixtures()
	if *file != "" {
		var data []byte
		data, err = os.ReadFile(*file)
		if err == nil {
			fixtures, err = seed.ParseFixtures(data)
		}
	}
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}

	log.Printf("🌱 Seeding preferences (environment: %s, backend: %s)", cfg.Environment, cfg.PreferencesBackend)

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open preferences store: %v", err)
	}
	defer store.Close()

	n, err := seed.NewPreferencesSeeder(store.Preferences, logger).Seed(ctx, fixtures)
	if err != nil {
		log.Fatalf("Seeding stopped after %d users: %v", n, err)
	}

	if store.Backend == "memory" {
		log.Println("⚠️  memory backend: seeded records are discarded on exit")
	}
	log.Printf("🎉 Seeded %d users", n)
}
