package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentdojo/swarmdeck/internal/appstate"
	"github.com/agentdojo/swarmdeck/internal/config"
	"github.com/agentdojo/swarmdeck/internal/gateway"
	"github.com/agentdojo/swarmdeck/internal/mockdata"
	"github.com/agentdojo/swarmdeck/internal/natsbus"
	"github.com/agentdojo/swarmdeck/internal/store"
	"github.com/agentdojo/swarmdeck/internal/view"
	"github.com/agentdojo/swarmdeck/internal/web"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("swarmdeck %s\n", version)
	case "dashboard":
		if err := runDashboard(); err != nil {
			slog.Error("dashboard failed", "error", err)
			os.Exit(1)
		}
	case "backend":
		if err := runBackend(); err != nil {
			slog.Error("backend failed", "error", err)
			os.Exit(1)
		}
	case "export":
		if err := runExport(os.Args[2:]); err != nil {
			slog.Error("export failed", "error", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: swarmdeck <command>\n\nCommands:\n  dashboard  Start the dashboard runtime against the mock backend\n  backend    Start the development REST backend\n  export     Export a snapshot of the demo dataset\n  version    Print version\n")
}

func runDashboard() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.Default()
	slog.Info("starting swarmdeck dashboard", "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Embedded NATS
	bus, err := natsbus.New(cfg.NATS)
	if err != nil {
		return fmt.Errorf("init nats: %w", err)
	}
	defer bus.Close()
	slog.Info("nats started", "port", bus.Port())

	client, err := natsbus.NewClient(bus)
	if err != nil {
		return fmt.Errorf("init nats client: %w", err)
	}
	defer client.Close()

	// Mock backend and its drift generator
	svc := mockdata.New(cfg.Mock, client)
	gen := mockdata.NewGenerator(svc, logger)
	gen.Reload(cfg.Mock.DriftInterval)
	go gen.Run(ctx)
	slog.Info("mock backend seeded", "drift_interval", cfg.Mock.DriftInterval)

	// Application state
	state := appstate.New(cfg.Notify.TTL, client)
	state.SetUser(&appstate.User{
		ID:    "1",
		Name:  "Admin User",
		Email: "admin@example.com",
		Role:  "admin",
	})
	go state.StartJanitor(ctx)

	// Remote gateway for swarm management and the tool registry
	api := gateway.NewClient(cfg.Gateway, logger)

	// Screens; the polling ones are activated for the whole run
	dashboard := view.NewDashboardScreen(svc, state, cfg.Poll.Dashboard, logger)
	decisions := view.NewDecisionsScreen(svc, state, cfg.Poll.Decisions, logger)
	trainingData := view.NewTrainingDataScreen(svc, state, cfg.Poll.TrainingData, logger)
	swarms := view.NewSwarmsScreen(api, state, logger)
	tools := view.NewToolsScreen(api, state, logger)

	dashboard.Activate(ctx)
	defer dashboard.Deactivate()
	decisions.Activate(ctx)
	defer decisions.Deactivate()
	trainingData.Activate(ctx)
	defer trainingData.Deactivate()

	if err := swarms.Load(ctx); err != nil {
		slog.Warn("swarm gateway not reachable", "error", err)
	}
	if err := tools.Load(ctx, ""); err != nil {
		slog.Warn("tool registry not reachable", "error", err)
	}

	slog.Info("dashboard running", "gateway", cfg.Gateway.BaseURL)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig)
	cancel()
	return nil
}

func runBackend() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.Info("starting swarmdeck backend", "version", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// SQLite store
	db, err := store.New(cfg.Backend)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()
	slog.Info("store initialized", "path", cfg.Backend.StorePath)

	// Embedded NATS
	bus, err := natsbus.New(cfg.NATS)
	if err != nil {
		return fmt.Errorf("init nats: %w", err)
	}
	defer bus.Close()
	slog.Info("nats started", "port", bus.Port())

	srv := web.NewServer(db, bus, cfg.Backend, version)
	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error("web server error", "error", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig)
	cancel()
	return nil
}
