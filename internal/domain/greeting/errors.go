package greeting

import "fmt"

// ErrInvalidGreeting represents validation errors for greetings
type ErrInvalidGreeting struct {
	Field  string
	Reason string
}

func (e *ErrInvalidGreeting) Error() string {
	return fmt.Sprintf("invalid greeting: %s - %s", e.Field, e.Reason)
}

// ErrGreetingNotFound represents errors when a greeting cannot be found
type ErrGreetingNotFound struct {
	ID string
}

func (e *ErrGreetingNotFound) Error() string {
	return fmt.Sprintf("greeting not found: id=%s", e.ID)
}
