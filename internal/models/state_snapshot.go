package models

import "time"

// StateSnapshot stores one serialized dashboard state per storage key.
type StateSnapshot struct {
	StorageKey string    `gorm:"primaryKey;size:191" json:"storage_key"`
	Payload    string    `gorm:"type:text" json:"payload"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (StateSnapshot) TableName() string { return "state_snapshots" }
