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

	"github.com/abhishek-iiit/innotract/internal/adapter/llm"
	"github.com/abhishek-iiit/innotract/internal/config"
	"github.com/abhishek-iiit/innotract/internal/engine"
	"github.com/abhishek-iiit/innotract/internal/repository"
	"github.com/abhishek-iiit/innotract/internal/service"
	transport "github.com/abhishek-iiit/innotract/internal/transport/http"
	"github.com/abhishek-iiit/innotract/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting intake service...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Generation service: %s (model %s)", cfg.OllamaURL, cfg.ModelName)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize the turn engine. Absence is a checked state: when the
	// generation service is unreachable at startup, the service runs
	// with no engine and refuses chat requests with 503.
	llmClient := llm.NewClient(cfg.OllamaURL, cfg.ModelName, cfg.ModelTemperature, cfg.LLMTimeout)

	var eng *engine.Engine
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := llmClient.Ping(pingCtx); err != nil {
		log.Printf("WARN: could not initialize conversation engine: %v", err)
	} else {
		eng = engine.New(llmClient)
	}
	cancelPing()

	// Initialize service and server
	svc := service.New(db, eng, policyEngine, cfg)
	e := transport.NewServer(svc, cfg)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down intake service...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Intake service stopped")
}
