package notifications

import (
	"context"
	"fmt"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
)

// RecordGreetingHandler persists greeting history when a greeting happens
type RecordGreetingHandler struct {
	greetingRepo greeting.Repository
}

// NewRecordGreetingHandler creates a new RecordGreetingHandler
func NewRecordGreetingHandler(greetingRepo greeting.Repository) *RecordGreetingHandler {
	return &RecordGreetingHandler{
		greetingRepo: greetingRepo,
	}
}

// Handle persists the greeting carried by the notification
func (h *RecordGreetingHandler) Handle(ctx context.Context, notification *GreetedNotification) error {
	id, err := greeting.NewGreetingIDFromString(notification.GreetingID)
	if err != nil {
		return fmt.Errorf("invalid greeting id in notification: %w", err)
	}

	g := greeting.ReconstructGreeting(id, notification.Name, notification.Message, notification.Timestamp)

	if err := h.greetingRepo.Create(ctx, g); err != nil {
		return fmt.Errorf("failed to persist greeting: %w", err)
	}

	return nil
}
