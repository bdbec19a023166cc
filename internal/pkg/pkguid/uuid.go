package pkguid

import "github.com/google/uuid"

// UUID generates version 7 UUID strings, used as comparison run IDs. The time
// prefix keeps concurrently created runs roughly sortable in logs.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new v7 UUID string.
func (u *UUID) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
