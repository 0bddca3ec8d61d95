package uid

import "github.com/google/uuid"

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// Short returns a compact identifier suitable for log correlation.
func Short() string {
	return uuid.New().String()[:8]
}
