package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/huangang/teamboard/internal/config"
	"github.com/huangang/teamboard/internal/models"
	"github.com/huangang/teamboard/internal/persistence"
)

// reset_state removes the persisted dashboard snapshot so the next server
// start begins from seed data with nobody signed in.
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	key := flag.String("key", "", "storage key to clear (defaults to storage.key from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *key == "" {
		*key = cfg.Storage.Key
	}

	db, err := models.OpenDB(&cfg.Database)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	if err := models.AutoMigrate(db); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Connected to database successfully!")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := persistence.NewGormAdapter(db, *key)
	if _, err := adapter.Load(ctx); errors.Is(err, persistence.ErrNotFound) {
		fmt.Printf("No snapshot stored under %q, nothing to do.\n", *key)
		return
	}

	if err := adapter.Clear(ctx); err != nil {
		fmt.Printf("Failed to clear snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Cleared snapshot %q.\n", *key)
}
