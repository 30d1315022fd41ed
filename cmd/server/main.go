package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xiaot623/gogo/venueboard/internal/config"
	"github.com/xiaot623/gogo/venueboard/internal/hub"
	"github.com/xiaot623/gogo/venueboard/internal/metrics"
	"github.com/xiaot623/gogo/venueboard/internal/repository"
	"github.com/xiaot623/gogo/venueboard/internal/service"
	internalhttp "github.com/xiaot623/gogo/venueboard/internal/transport/http"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.LogLevel == "debug" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	log.Printf("Starting venueboard...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Timezone: %s", cfg.Timezone)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	// Load and compile the import pipeline
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline, err := config.LoadPipeline(cfg.PipelineFile)
	if err != nil {
		log.Fatalf("Failed to load pipeline: %v", err)
	}
	compiled, err := pipeline.Compile(ctx, loc, nil)
	if err != nil {
		log.Fatalf("Failed to compile pipeline: %v", err)
	}
	if cfg.PipelineFile != "" {
		log.Printf("Pipeline: %s", cfg.PipelineFile)
	}

	// Initialize store
	db, err := repository.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize metrics and hub
	m := metrics.New()
	connectionHub := hub.NewHub()
	connectionHub.OnCount = m.SetConnections
	go connectionHub.Run(ctx)

	// Initialize service
	svc := service.New(db, compiled, connectionHub, m)

	server := internalhttp.NewServer(cfg, svc, connectionHub, m)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	log.Printf("HTTP server started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down venueboard...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}
	cancel()

	log.Println("Venueboard stopped")
}
