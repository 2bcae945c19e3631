package cli

import (
	"fmt"

	"github.com/andrescamacho/greeter-go/internal/adapters/persistence"
	"github.com/andrescamacho/greeter-go/internal/application/setup"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/config"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/database"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/logging"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// buildMediator wires the full dispatch pipeline backed by the configured
// database. Every CLI command runs through the same chain the daemon uses.
func buildMediator() (mediator.Mediator, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	strategy, err := mediator.ParsePublishStrategy(cfg.Dispatch.PublishStrategy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publish strategy: %w", err)
	}

	// Dispatch logging stays quiet unless --verbose; stderr keeps command
	// output on stdout clean for piping
	var dispatchLogger mediator.Logger
	if verbose {
		slogger, err := logging.NewLogger(&config.LoggingConfig{
			Level:  "debug",
			Format: "text",
			Output: "stderr",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		dispatchLogger = logging.NewSlogAdapter(slogger)
	}

	greetingRepo := persistence.NewGormGreetingRepository(db)
	registry := setup.NewHandlerRegistry(greetingRepo, nil, dispatchLogger, strategy)

	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return m, nil
}
