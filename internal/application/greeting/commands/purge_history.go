package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
	"github.com/andrescamacho/greeter-go/internal/domain/shared"
)

// PurgeHistoryCommand represents a command to delete greetings older than
// the given age. It produces no result.
type PurgeHistoryCommand struct {
	OlderThan time.Duration `json:"older_than"`
}

// PurgeHistoryHandler handles the PurgeHistory command
type PurgeHistoryHandler struct {
	greetingRepo greeting.Repository
	clock        shared.Clock
}

// NewPurgeHistoryHandler creates a new PurgeHistoryHandler
func NewPurgeHistoryHandler(greetingRepo greeting.Repository, clock shared.Clock) *PurgeHistoryHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &PurgeHistoryHandler{
		greetingRepo: greetingRepo,
		clock:        clock,
	}
}

// Handle executes the PurgeHistory command
func (h *PurgeHistoryHandler) Handle(ctx context.Context, cmd *PurgeHistoryCommand) error {
	cutoff := h.clock.Now().Add(-cmd.OlderThan)

	if _, err := h.greetingRepo.DeleteOlderThan(ctx, cutoff); err != nil {
		return fmt.Errorf("failed to purge greeting history: %w", err)
	}

	return nil
}
