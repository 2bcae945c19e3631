package greeting

import (
	"context"
	"time"
)

// Repository defines persistence operations for greetings
type Repository interface {
	// Create persists a new greeting
	Create(ctx context.Context, greeting *Greeting) error

	// FindByID retrieves a greeting by its ID
	FindByID(ctx context.Context, id GreetingID) (*Greeting, error)

	// Find retrieves greetings with optional filtering
	Find(ctx context.Context, opts QueryOptions) ([]*Greeting, error)

	// Count returns the count of greetings matching the criteria
	Count(ctx context.Context, opts QueryOptions) (int, error)

	// CountByName returns the number of greetings recorded per name
	CountByName(ctx context.Context) (map[string]int, error)

	// DeleteOlderThan removes greetings created before the cutoff and
	// returns the number of rows removed
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// QueryOptions defines filtering and pagination options for greeting queries
type QueryOptions struct {
	// Name filtering (exact match)
	Name *string

	// Date range filtering
	StartDate *time.Time
	EndDate   *time.Time

	// Pagination
	Limit  int
	Offset int

	// Sorting
	OrderBy string // "created_at ASC" or "created_at DESC" (default DESC)
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:   50,
		Offset:  0,
		OrderBy: "created_at DESC",
	}
}
