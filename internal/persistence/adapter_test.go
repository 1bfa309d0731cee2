package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/huangang/teamboard/internal/config"
	"github.com/huangang/teamboard/internal/models"
)

func newGormAdapter(t *testing.T, key string) *GormAdapter {
	t.Helper()
	db, err := models.OpenDB(&config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"})
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// one connection keeps the in-memory database alive across calls
	sqlDB.SetMaxOpenConns(1)
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate() error = %v", err)
	}
	return NewGormAdapter(db, key)
}

func TestAdapters(t *testing.T) {
	adapters := map[string]func(t *testing.T) Adapter{
		"memory": func(t *testing.T) Adapter { return NewMemoryAdapter() },
		"gorm":   func(t *testing.T) Adapter { return newGormAdapter(t, "teamboard_state") },
	}

	for name, build := range adapters {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := build(t)

			if _, err := a.Load(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Load() on empty adapter error = %v, expected ErrNotFound", err)
			}

			if err := a.Save(ctx, []byte(`{"v":1}`)); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := a.Save(ctx, []byte(`{"v":2}`)); err != nil {
				t.Fatalf("second Save() error = %v", err)
			}

			got, err := a.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if string(got) != `{"v":2}` {
				t.Errorf("Load() = %s, expected %s", got, `{"v":2}`)
			}

			if err := a.Clear(ctx); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if _, err := a.Load(ctx); !errors.Is(err, ErrNotFound) {
				t.Errorf("Load() after Clear error = %v, expected ErrNotFound", err)
			}
		})
	}
}

func TestGormAdapter_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := newGormAdapter(t, "one")
	b := NewGormAdapter(a.db, "two")

	if err := a.Save(ctx, []byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("other key Load() error = %v, expected ErrNotFound", err)
	}
}
