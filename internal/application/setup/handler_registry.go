package setup

import (
	"fmt"

	"github.com/andrescamacho/greeter-go/internal/application/common"
	greetingApp "github.com/andrescamacho/greeter-go/internal/application/greeting"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/notifications"
	"github.com/andrescamacho/greeter-go/internal/application/greeting/queries"
	"github.com/andrescamacho/greeter-go/internal/domain/greeting"
	"github.com/andrescamacho/greeter-go/internal/domain/shared"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	greetingRepo    greeting.Repository
	clock           shared.Clock
	logger          mediator.Logger
	publishStrategy mediator.PublishStrategy

	// Set by CreateConfiguredMediator once the chain is composed; the greet
	// handler factory resolves the publisher through this field.
	mediator mediator.Mediator
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	greetingRepo greeting.Repository,
	clock shared.Clock,
	logger mediator.Logger,
	publishStrategy mediator.PublishStrategy,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		greetingRepo:    greetingRepo,
		clock:           clock,
		logger:          logger,
		publishStrategy: publishStrategy,
	}
}

// RegisterGreetingHandlers registers all greeting command and query handlers
//
// This method registers:
//   - GreetCommand → GreetHandler (produces the greeting, publishes GreetedNotification)
//   - PurgeHistoryCommand → PurgeHistoryHandler (void, deletes old history)
//   - GetHistoryQuery → GetHistoryHandler (paged greeting history)
//   - GetStatsQuery → GetStatsHandler (totals and per-name counts)
func (r *HandlerRegistry) RegisterGreetingHandlers(b *mediator.Builder) error {
	// GreetCommand resolves its handler per dispatch: the publisher it needs
	// only exists once the mediator has been composed
	err := mediator.RegisterRequestHandlerFactory(b, func() (mediator.RequestHandler[*commands.GreetCommand, *commands.GreetResponse], error) {
		if r.mediator == nil {
			return nil, fmt.Errorf("mediator has not been composed yet")
		}
		return commands.NewGreetHandler(r.mediator, r.clock), nil
	})
	if err != nil {
		return fmt.Errorf("failed to register greet handler: %w", err)
	}

	purgeHandler := commands.NewPurgeHistoryHandler(r.greetingRepo, r.clock)
	if err := mediator.RegisterVoidHandler[*commands.PurgeHistoryCommand](b, purgeHandler); err != nil {
		return fmt.Errorf("failed to register purge history handler: %w", err)
	}

	historyHandler := queries.NewGetHistoryHandler(r.greetingRepo)
	if err := mediator.RegisterRequestHandler[*queries.GetHistoryQuery, *queries.GetHistoryResponse](b, historyHandler); err != nil {
		return fmt.Errorf("failed to register get history handler: %w", err)
	}

	statsHandler := queries.NewGetStatsHandler(r.greetingRepo)
	if err := mediator.RegisterRequestHandler[*queries.GetStatsQuery, *queries.GetStatsResponse](b, statsHandler); err != nil {
		return fmt.Errorf("failed to register get stats handler: %w", err)
	}

	return nil
}

// RegisterGreetingValidators registers all request validators
//
// GreetCommand carries two validators; their failures are aggregated per field
// by the validation decorator.
func (r *HandlerRegistry) RegisterGreetingValidators(b *mediator.Builder) error {
	tagValidator := common.NewTagValidator[*commands.GreetCommand]()
	if err := mediator.RegisterValidator[*commands.GreetCommand](b, tagValidator); err != nil {
		return fmt.Errorf("failed to register greet tag validator: %w", err)
	}

	if err := mediator.RegisterValidator[*commands.GreetCommand](b, greetingApp.NewReservedNameValidator()); err != nil {
		return fmt.Errorf("failed to register reserved name validator: %w", err)
	}

	if err := mediator.RegisterValidator[*commands.PurgeHistoryCommand](b, greetingApp.NewPurgeHistoryValidator()); err != nil {
		return fmt.Errorf("failed to register purge history validator: %w", err)
	}

	return nil
}

// RegisterGreetingNotifications registers all GreetedNotification subscribers.
// Registration order is fan-out order: history is recorded before counters update.
func (r *HandlerRegistry) RegisterGreetingNotifications(b *mediator.Builder) error {
	recordHandler := notifications.NewRecordGreetingHandler(r.greetingRepo)
	if err := mediator.RegisterNotificationHandler[*notifications.GreetedNotification](b, recordHandler); err != nil {
		return fmt.Errorf("failed to register record greeting handler: %w", err)
	}

	counterHandler := notifications.NewGreetingCounterHandler()
	if err := mediator.RegisterNotificationHandler[*notifications.GreetedNotification](b, counterHandler); err != nil {
		return fmt.Errorf("failed to register greeting counter handler: %w", err)
	}

	return nil
}

// CreateConfiguredMediator registers everything and composes the dispatch chain
//
// The chain is validation, then logging, then any extra decorators (outermost
// first), around the base dispatcher. Extra decorators let callers add
// concerns like metrics without this package importing the adapters.
func (r *HandlerRegistry) CreateConfiguredMediator(extraDecorators ...mediator.Decorator) (mediator.Mediator, error) {
	b := mediator.NewBuilder()

	if err := r.RegisterGreetingHandlers(b); err != nil {
		return nil, err
	}
	if err := r.RegisterGreetingValidators(b); err != nil {
		return nil, err
	}
	if err := r.RegisterGreetingNotifications(b); err != nil {
		return nil, err
	}

	registry := b.Build()
	base := mediator.New(registry, mediator.WithPublishStrategy(r.publishStrategy))

	decorators := []mediator.Decorator{
		mediator.WithValidation(registry),
		mediator.WithLogging(r.logger),
	}
	decorators = append(decorators, extraDecorators...)

	m := mediator.Compose(base, decorators...)
	r.mediator = m

	return m, nil
}
