package helpers

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
)

// MockGreetingRepository is a test double for the greeting Repository interface
type MockGreetingRepository struct {
	mu        sync.RWMutex
	greetings []*greeting.Greeting

	// Error injection
	shouldError bool
	errorMsg    string
}

// NewMockGreetingRepository creates a new mock greeting repository
func NewMockGreetingRepository() *MockGreetingRepository {
	return &MockGreetingRepository{}
}

// Create stores a greeting
func (r *MockGreetingRepository) Create(ctx context.Context, g *greeting.Greeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shouldError {
		return fmt.Errorf("%s", r.errorMsg)
	}

	r.greetings = append(r.greetings, g)
	return nil
}

// FindByID finds a greeting by ID
func (r *MockGreetingRepository) FindByID(ctx context.Context, id greeting.GreetingID) (*greeting.Greeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.shouldError {
		return nil, fmt.Errorf("%s", r.errorMsg)
	}

	for _, g := range r.greetings {
		if g.ID().Equals(id) {
			return g, nil
		}
	}
	return nil, &greeting.ErrGreetingNotFound{ID: id.String()}
}

// Find returns greetings matching the query options, newest first
func (r *MockGreetingRepository) Find(ctx context.Context, opts greeting.QueryOptions) ([]*greeting.Greeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.shouldError {
		return nil, fmt.Errorf("%s", r.errorMsg)
	}

	matched := r.match(opts)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	return matched, nil
}

// Count returns the number of greetings matching the query options
func (r *MockGreetingRepository) Count(ctx context.Context, opts greeting.QueryOptions) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.shouldError {
		return 0, fmt.Errorf("%s", r.errorMsg)
	}

	return len(r.match(opts)), nil
}

// CountByName returns the number of greetings recorded per name
func (r *MockGreetingRepository) CountByName(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.shouldError {
		return nil, fmt.Errorf("%s", r.errorMsg)
	}

	counts := make(map[string]int)
	for _, g := range r.greetings {
		counts[g.Name()]++
	}
	return counts, nil
}

// DeleteOlderThan removes greetings created before the cutoff
func (r *MockGreetingRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shouldError {
		return 0, fmt.Errorf("%s", r.errorMsg)
	}

	var kept []*greeting.Greeting
	var deleted int64
	for _, g := range r.greetings {
		if g.CreatedAt().Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, g)
	}
	r.greetings = kept
	return deleted, nil
}

// All returns every stored greeting in insertion order
func (r *MockGreetingRepository) All() []*greeting.Greeting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*greeting.Greeting{}, r.greetings...)
}

// SetError configures error injection
func (r *MockGreetingRepository) SetError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shouldError = true
	r.errorMsg = msg
}

// ClearError clears error injection
func (r *MockGreetingRepository) ClearError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shouldError = false
	r.errorMsg = ""
}

func (r *MockGreetingRepository) match(opts greeting.QueryOptions) []*greeting.Greeting {
	var matched []*greeting.Greeting
	for _, g := range r.greetings {
		if opts.Name != nil && g.Name() != *opts.Name {
			continue
		}
		if opts.StartDate != nil && g.CreatedAt().Before(*opts.StartDate) {
			continue
		}
		if opts.EndDate != nil && g.CreatedAt().After(*opts.EndDate) {
			continue
		}
		matched = append(matched, g)
	}
	return matched
}
