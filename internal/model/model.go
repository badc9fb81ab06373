// Package model defines the domain models for Daybook.
package model

// Model is the interface that all persisted records implement.
type Model interface {
	// GetKey returns the storage key for this record.
	GetKey() string
}

// Key prefixes and singleton keys used by the storage layer.
const (
	PrefixDay   = "day"
	PrefixEntry = "entry"
	KeySettings = "settings"
	KeyActive   = "active"
)

// Uncategorized is the breakdown key used for entries with an empty project or category.
const Uncategorized = "Uncategorized"
