package greeting

import (
	"fmt"

	"github.com/google/uuid"
)

// GreetingID is a value object representing a greeting's unique identifier
type GreetingID struct {
	value string
}

// NewGreetingID creates a new GreetingID with a generated UUID
func NewGreetingID() GreetingID {
	return GreetingID{value: uuid.New().String()}
}

// NewGreetingIDFromString creates a GreetingID from an existing UUID string
func NewGreetingIDFromString(id string) (GreetingID, error) {
	if id == "" {
		return GreetingID{}, fmt.Errorf("greeting_id cannot be empty")
	}

	// Validate UUID format
	_, err := uuid.Parse(id)
	if err != nil {
		return GreetingID{}, fmt.Errorf("invalid greeting_id format: %w", err)
	}

	return GreetingID{value: id}, nil
}

// MustNewGreetingIDFromString creates a GreetingID from a string, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewGreetingIDFromString(id string) GreetingID {
	gid, err := NewGreetingIDFromString(id)
	if err != nil {
		panic(err)
	}
	return gid
}

// Value returns the string value of the GreetingID
func (g GreetingID) Value() string {
	return g.value
}

// String returns a string representation of the GreetingID
func (g GreetingID) String() string {
	return g.value
}

// Equals checks if two GreetingIDs are equal
func (g GreetingID) Equals(other GreetingID) bool {
	return g.value == other.value
}

// IsZero checks if the GreetingID is the zero value (uninitialized)
func (g GreetingID) IsZero() bool {
	return g.value == ""
}
