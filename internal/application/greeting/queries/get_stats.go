package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
)

// GetStatsQuery represents a query for aggregate greeting statistics
type GetStatsQuery struct{}

// GetStatsResponse represents the result of the stats query
type GetStatsResponse struct {
	Total  int            `json:"total"`
	ByName map[string]int `json:"by_name"`
}

// GetStatsHandler handles the GetStats query
type GetStatsHandler struct {
	greetingRepo greeting.Repository
}

// NewGetStatsHandler creates a new GetStatsHandler
func NewGetStatsHandler(greetingRepo greeting.Repository) *GetStatsHandler {
	return &GetStatsHandler{
		greetingRepo: greetingRepo,
	}
}

// Handle executes the GetStats query
func (h *GetStatsHandler) Handle(ctx context.Context, query *GetStatsQuery) (*GetStatsResponse, error) {
	total, err := h.greetingRepo.Count(ctx, greeting.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to count greetings: %w", err)
	}

	byName, err := h.greetingRepo.CountByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count greetings by name: %w", err)
	}

	return &GetStatsResponse{
		Total:  total,
		ByName: byName,
	}, nil
}
