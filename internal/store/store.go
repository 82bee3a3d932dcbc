// Package store persists appointments, chat history and user profiles.
// Every query is scoped by the owning user's id; cross-tenant access is
// impossible by construction.
package store

import "gorm.io/gorm"

// Store wraps the GORM connection with owner-scoped operations.
type Store struct {
	db *gorm.DB
}

// New creates a Store on top of an open GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
