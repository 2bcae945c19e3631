package notifications

import "time"

// GreetedNotification is published after a greeting has been produced.
// Subscribers record history and update counters.
type GreetedNotification struct {
	GreetingID string    // Unique greeting identifier
	Name       string    // Who was greeted
	Message    string    // The greeting text that was produced
	Timestamp  time.Time // When the greeting happened
}
