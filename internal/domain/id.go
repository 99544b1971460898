package domain

import "github.com/google/uuid"

// NewID creates a new unique identifier string.
func NewID() string {
	return uuid.New().String()
}
