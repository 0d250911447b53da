package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"propshare/internal/config"
	"propshare/internal/db"
	"propshare/internal/jobs"
	"propshare/internal/metrics"
	"propshare/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	roles, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.IsDev() {
		if err := database.SeedDevProperties(ctx); err != nil {
			log.Printf("Warning: Failed to seed dev properties: %v", err)
		}
	}

	// Register Prometheus collectors
	metrics.Init(database)

	// Background expiry sweeper
	sweeper := jobs.NewCleanupSweeper(database, cfg.CleanupInterval)
	go sweeper.Start(ctx)

	// Initialize server and routes
	srv := server.New(cfg)
	if err := server.RegisterRoutes(ctx, srv, database, roles); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
