package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/greeter-go/internal/adapters/httpapi"
	"github.com/andrescamacho/greeter-go/internal/adapters/metrics"
	"github.com/andrescamacho/greeter-go/internal/adapters/persistence"
	"github.com/andrescamacho/greeter-go/internal/application/setup"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/config"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/database"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/logging"
	"github.com/andrescamacho/greeter-go/internal/infrastructure/pidfile"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

func main() {
	// Parse command-line flags
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	flag.Parse()

	fmt.Println("Greeter Daemon v0.1.0")
	fmt.Println("=====================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig("") // Empty string = search default paths

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	// Try to acquire the lock
	err := pf.Acquire()
	if err != nil {
		if *forceFlag {
			// Force mode: kill existing daemon and try again
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			fmt.Println("Existing daemon killed")

			// Try to acquire lock again
			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	// Initialize application
	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Setup database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 2. Setup structured logging
	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	fmt.Println("Logger initialized")

	// 3. Initialize metrics (optional)
	var dispatchMetrics *metrics.DispatchMetricsCollector
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		dispatchMetrics = metrics.NewDispatchMetricsCollector()
		if err := dispatchMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register dispatch metrics: %w", err)
		}

		greetingMetrics := metrics.NewGreetingMetricsCollector()
		if err := greetingMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register greeting metrics: %w", err)
		}
		metrics.SetGlobalGreetingCollector(greetingMetrics)

		metricsServer = metrics.NewServer(&cfg.Metrics, logger)
		if err := metricsServer.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		fmt.Printf("Metrics enabled on %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// 4. Build the dispatch pipeline
	strategy, err := mediator.ParsePublishStrategy(cfg.Dispatch.PublishStrategy)
	if err != nil {
		return fmt.Errorf("failed to parse publish strategy: %w", err)
	}

	greetingRepo := persistence.NewGormGreetingRepository(db)
	registry := setup.NewHandlerRegistry(greetingRepo, nil, logging.NewSlogAdapter(logger), strategy)

	var extraDecorators []mediator.Decorator
	if dispatchMetrics != nil {
		extraDecorators = append(extraDecorators, metrics.PrometheusDecorator(dispatchMetrics))
	}

	m, err := registry.CreateConfiguredMediator(extraDecorators...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}
	fmt.Println("Dispatch pipeline configured")

	// 5. Start HTTP server
	app := httpapi.NewApp(m, &cfg.Server)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Listen(addr)
	}()
	fmt.Printf("HTTP server listening on %s\n", addr)

	fmt.Println("\n✓ Daemon is ready to accept connections")
	fmt.Println("Press Ctrl+C to stop")

	// 6. Wait for shutdown signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %v, shutting down...\n", sig)
	case err := <-serverErr:
		return fmt.Errorf("http server error: %w", err)
	}

	// 7. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down metrics server: %w", err)
		}
	}

	fmt.Println("Daemon stopped")
	return nil
}
