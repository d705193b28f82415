package id

import "github.com/google/uuid"

// NewUUIDv7 returns a new time-ordered UUID string. All entity IDs use
// UUIDv7 so that primary keys sort by creation time.
func NewUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source fails; fall back to v4.
		return uuid.NewString()
	}
	return id.String()
}
