package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 returns a time-ordered id; loan requests and users
// use it so primary keys sort by creation time.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the entropy source does; fall back to
		// a random v4 rather than panic.
		return uuid.New()
	}
	return id
}
