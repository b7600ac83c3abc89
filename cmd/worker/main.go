package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"sakhigps/internal/config"
	"sakhigps/internal/services"
	"sakhigps/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	notifier, err := services.NewNotifier(cfg.Notify)
	if err != nil {
		log.Fatalf("Failed to set up notifications: %v", err)
	}

	registry := tasks.NewRegistry()
	tasks.DefineTasks(registry, notifier)
	runner := tasks.NewRunner(db, registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Worker started with tasks %v, checking every %s", registry.Names(), cfg.WorkerInterval)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	// Run once on start so due check-ins are not held back a full interval
	process(ctx, runner)

	for {
		select {
		case <-ticker.C:
			process(ctx, runner)
		case <-ctx.Done():
			log.Println("Shutting down worker...")
			return
		}
	}
}

func process(ctx context.Context, runner *tasks.Runner) {
	n, err := runner.ProcessDue(ctx)
	if err != nil {
		log.Printf("Error processing due tasks: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Processed %d due tasks", n)
	}
}
