package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangang/teamboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAdapter keeps the snapshot in the state_snapshots table.
type GormAdapter struct {
	db  *gorm.DB
	key string
}

func NewGormAdapter(db *gorm.DB, key string) *GormAdapter {
	return &GormAdapter{db: db, key: key}
}

func (a *GormAdapter) Key() string { return a.key }

func (a *GormAdapter) Load(ctx context.Context) ([]byte, error) {
	var rec models.StateSnapshot
	err := a.db.WithContext(ctx).Where("storage_key = ?", a.key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", a.key, err)
	}
	return []byte(rec.Payload), nil
}

func (a *GormAdapter) Save(ctx context.Context, data []byte) error {
	rec := models.StateSnapshot{
		StorageKey: a.key,
		Payload:    string(data),
		UpdatedAt:  time.Now(),
	}
	err := a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", a.key, err)
	}
	return nil
}

func (a *GormAdapter) Clear(ctx context.Context) error {
	err := a.db.WithContext(ctx).Where("storage_key = ?", a.key).Delete(&models.StateSnapshot{}).Error
	if err != nil {
		return fmt.Errorf("clear snapshot %q: %w", a.key, err)
	}
	return nil
}
