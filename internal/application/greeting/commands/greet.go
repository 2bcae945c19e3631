package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/notifications"
	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
	"github.com/andrescamacho/greeter-go/internal/domain/shared"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// GreetCommand represents a command to greet a person by name
type GreetCommand struct {
	Name string `json:"name" validate:"required,max=64"`
}

// GreetResponse represents the result of a greeting
type GreetResponse struct {
	GreetingID string    `json:"greeting_id"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// GreetHandler handles the Greet command
type GreetHandler struct {
	publisher mediator.Publisher
	clock     shared.Clock
}

// NewGreetHandler creates a new GreetHandler
func NewGreetHandler(publisher mediator.Publisher, clock shared.Clock) *GreetHandler {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &GreetHandler{
		publisher: publisher,
		clock:     clock,
	}
}

// Handle executes the Greet command
func (h *GreetHandler) Handle(ctx context.Context, cmd *GreetCommand) (*GreetResponse, error) {
	timestamp := h.clock.Now()
	message := fmt.Sprintf("Hello %s!", cmd.Name)

	// Create greeting entity
	g, err := greeting.NewGreeting(cmd.Name, message, timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to create greeting: %w", err)
	}

	// Announce the greeting; subscribers record history and counters
	event := &notifications.GreetedNotification{
		GreetingID: g.ID().String(),
		Name:       g.Name(),
		Message:    g.Message(),
		Timestamp:  g.CreatedAt(),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to publish greeted notification: %w", err)
	}

	return &GreetResponse{
		GreetingID: g.ID().String(),
		Message:    g.Message(),
		Timestamp:  g.CreatedAt(),
	}, nil
}
