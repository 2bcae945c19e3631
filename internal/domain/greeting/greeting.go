package greeting

import (
	"fmt"
	"strings"
	"time"
)

// Greeting is the aggregate root representing a delivered greeting
// Greetings are immutable once created
type Greeting struct {
	id        GreetingID
	name      string
	message   string
	createdAt time.Time
}

// NewGreeting creates a new greeting with validation
func NewGreeting(name, message string, createdAt time.Time) (*Greeting, error) {
	id := NewGreetingID()

	g := &Greeting{
		id:        id,
		name:      name,
		message:   message,
		createdAt: createdAt,
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// ReconstructGreeting reconstructs a greeting from persistence
// This bypasses validation and is used by the repository
func ReconstructGreeting(id GreetingID, name, message string, createdAt time.Time) *Greeting {
	return &Greeting{
		id:        id,
		name:      name,
		message:   message,
		createdAt: createdAt,
	}
}

// Validate checks that the greeting satisfies all invariants
func (g *Greeting) Validate() error {
	if strings.TrimSpace(g.name) == "" {
		return &ErrInvalidGreeting{
			Field:  "name",
			Reason: "name cannot be empty",
		}
	}

	if g.message == "" {
		return &ErrInvalidGreeting{
			Field:  "message",
			Reason: "message cannot be empty",
		}
	}

	// Timestamp cannot be in the future (allow 1 minute buffer for clock skew)
	now := time.Now().Add(1 * time.Minute)
	if g.createdAt.After(now) {
		return &ErrInvalidGreeting{
			Field:  "created_at",
			Reason: fmt.Sprintf("created_at cannot be in the future: %s", g.createdAt),
		}
	}

	return nil
}

// Getters (all fields are immutable)

func (g *Greeting) ID() GreetingID {
	return g.id
}

func (g *Greeting) Name() string {
	return g.name
}

func (g *Greeting) Message() string {
	return g.message
}

func (g *Greeting) CreatedAt() time.Time {
	return g.createdAt
}

// String provides a human-readable representation
func (g *Greeting) String() string {
	return fmt.Sprintf("Greeting[%s, name=%s, at=%s]",
		g.id.String(), g.name, g.createdAt.Format(time.RFC3339))
}
