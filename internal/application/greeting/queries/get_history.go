package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
	"github.com/andrescamacho/greeter-go/pkg/utils"
)

// maxHistoryPageSize caps a single history page regardless of the requested limit
const maxHistoryPageSize = 500

// GetHistoryQuery represents a query to retrieve recorded greetings
type GetHistoryQuery struct {
	Name   *string `json:"name"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// GetHistoryResponse represents the result of the query
type GetHistoryResponse struct {
	Greetings []*GreetingDTO `json:"greetings"`
	Total     int            `json:"total"`
}

// GreetingDTO represents a greeting data transfer object
type GreetingDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// GetHistoryHandler handles the GetHistory query
type GetHistoryHandler struct {
	greetingRepo greeting.Repository
}

// NewGetHistoryHandler creates a new GetHistoryHandler
func NewGetHistoryHandler(greetingRepo greeting.Repository) *GetHistoryHandler {
	return &GetHistoryHandler{
		greetingRepo: greetingRepo,
	}
}

// Handle executes the GetHistory query
func (h *GetHistoryHandler) Handle(ctx context.Context, query *GetHistoryQuery) (*GetHistoryResponse, error) {
	opts := h.buildQueryOptions(query)

	greetings, err := h.greetingRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query greetings: %w", err)
	}

	total, err := h.greetingRepo.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to count greetings: %w", err)
	}

	dtos := make([]*GreetingDTO, len(greetings))
	for i, g := range greetings {
		dtos[i] = h.toDTO(g)
	}

	return &GetHistoryResponse{
		Greetings: dtos,
		Total:     total,
	}, nil
}

func (h *GetHistoryHandler) buildQueryOptions(query *GetHistoryQuery) greeting.QueryOptions {
	opts := greeting.DefaultQueryOptions()

	if query.Name != nil {
		opts.Name = query.Name
	}

	if query.Limit > 0 {
		opts.Limit = utils.Min(query.Limit, maxHistoryPageSize)
	}
	opts.Offset = query.Offset

	return opts
}

func (h *GetHistoryHandler) toDTO(g *greeting.Greeting) *GreetingDTO {
	return &GreetingDTO{
		ID:        g.ID().String(),
		Name:      g.Name(),
		Message:   g.Message(),
		CreatedAt: g.CreatedAt(),
	}
}
