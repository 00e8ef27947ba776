// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Email is unique as stored (case-sensitive).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
