package models

import "time"

type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
)

// Notification is a transient toast shown to the session user.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Variant   Variant   `json:"variant"`
	CreatedAt time.Time `json:"createdAt"`
}
