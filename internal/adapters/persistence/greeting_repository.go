package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
)

// GormGreetingRepository implements the greeting Repository using GORM
type GormGreetingRepository struct {
	db *gorm.DB
}

// NewGormGreetingRepository creates a new GORM greeting repository
func NewGormGreetingRepository(db *gorm.DB) *GormGreetingRepository {
	return &GormGreetingRepository{db: db}
}

// Create persists a new greeting
func (r *GormGreetingRepository) Create(ctx context.Context, g *greeting.Greeting) error {
	model := r.greetingToModel(g)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to create greeting: %w", result.Error)
	}

	return nil
}

// FindByID retrieves a greeting by its ID
func (r *GormGreetingRepository) FindByID(ctx context.Context, id greeting.GreetingID) (*greeting.Greeting, error) {
	var model GreetingModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id.String()).
		First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, &greeting.ErrGreetingNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find greeting: %w", result.Error)
	}

	return r.modelToGreeting(&model)
}

// Find retrieves greetings with optional filtering
func (r *GormGreetingRepository) Find(ctx context.Context, opts greeting.QueryOptions) ([]*greeting.Greeting, error) {
	query := r.applyFilters(r.db.WithContext(ctx), opts)

	// Apply sorting
	orderBy := "created_at DESC"
	if opts.OrderBy != "" {
		orderBy = opts.OrderBy
	}
	query = query.Order(orderBy)

	// Apply pagination
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []GreetingModel
	result := query.Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find greetings: %w", result.Error)
	}

	// Convert models to domain entities
	greetings := make([]*greeting.Greeting, len(models))
	for i, model := range models {
		g, err := r.modelToGreeting(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert greeting model: %w", err)
		}
		greetings[i] = g
	}

	return greetings, nil
}

// Count returns the count of greetings matching the criteria
func (r *GormGreetingRepository) Count(ctx context.Context, opts greeting.QueryOptions) (int, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&GreetingModel{}), opts)

	var count int64
	result := query.Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to count greetings: %w", result.Error)
	}

	return int(count), nil
}

// CountByName returns the number of greetings recorded per name
func (r *GormGreetingRepository) CountByName(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Name  string
		Count int
	}

	result := r.db.WithContext(ctx).
		Model(&GreetingModel{}).
		Select("name, COUNT(*) as count").
		Group("name").
		Scan(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to count greetings by name: %w", result.Error)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Name] = row.Count
	}

	return counts, nil
}

// DeleteOlderThan removes greetings created before the cutoff
func (r *GormGreetingRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&GreetingModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete greetings: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// applyFilters applies query options to a GORM query
func (r *GormGreetingRepository) applyFilters(query *gorm.DB, opts greeting.QueryOptions) *gorm.DB {
	if opts.Name != nil {
		query = query.Where("name = ?", *opts.Name)
	}

	// Date range filtering
	if opts.StartDate != nil {
		query = query.Where("created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		query = query.Where("created_at <= ?", *opts.EndDate)
	}

	return query
}

// modelToGreeting converts database model to domain entity
func (r *GormGreetingRepository) modelToGreeting(model *GreetingModel) (*greeting.Greeting, error) {
	id, err := greeting.NewGreetingIDFromString(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid greeting ID in database: %w", err)
	}

	return greeting.ReconstructGreeting(id, model.Name, model.Message, model.CreatedAt), nil
}

// greetingToModel converts domain entity to database model
func (r *GormGreetingRepository) greetingToModel(g *greeting.Greeting) *GreetingModel {
	return &GreetingModel{
		ID:        g.ID().String(),
		Name:      g.Name(),
		Message:   g.Message(),
		CreatedAt: g.CreatedAt(),
	}
}
