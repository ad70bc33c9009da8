package types

import (
	"time"

	"github.com/google/uuid"
)

// NewInvocationID generates a UUIDv7 invocation identifier.
// Time-ordered IDs keep log lines of consecutive clicks sortable.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewInvocationID() InvocationID {
	return InvocationID(uuid.Must(uuid.NewV7()).String())
}

// InvocationIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func InvocationIDTime(id InvocationID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
