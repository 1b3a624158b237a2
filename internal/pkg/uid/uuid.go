package uid

import "github.com/google/uuid"

// UUID generates time-ordered RFC 9562 UUID strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUIDv7 string, falling back to v4 when the
// random source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Static always returns the same identifier. Useful in tests.
type Static string

// Generate returns s.
func (s Static) Generate() string {
	return string(s)
}
