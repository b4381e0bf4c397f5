// Package models defines the server's persisted records.
package models

import "time"

// User is a credential record. Email is unique and compared exactly as
// stored.
type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}
