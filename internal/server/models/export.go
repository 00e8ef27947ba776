package models

import "time"

// Export records one CSV snapshot uploaded to object storage.
type Export struct {
	ID         string
	OwnerID    string
	StorageKey string
	Rows       int
	CreatedAt  time.Time
}
