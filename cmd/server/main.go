/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the shift classification server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags and YAML config
  2. Initialize SQLite record store
  3. Build the classification policy (factory JSON or reference default)
  4. Create the engine with a fresh week ledger
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default from config, 8080)
  -db      SQLite database path (default: shifts.db)
           Use ":memory:" for an in-memory database
  -config  YAML config path (default: shift-engine.yaml)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config: YAML configuration
  - store/sqlite: Record persistence
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turno/shift-engine/api"
	"github.com/turno/shift-engine/config"
	"github.com/turno/shift-engine/factory"
	"github.com/turno/shift-engine/shift"
	"github.com/turno/shift-engine/store/sqlite"
)

func main() {
	// Flags override the config file.
	configPath := flag.String("config", "shift-engine.yaml", "YAML config path")
	port := flag.Int("port", 0, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}

	// Classification policy
	policy := shift.DefaultPolicy()
	restPreset := shift.AutoRest(480, 60)
	if cfg.PolicyJSON != "" {
		var parsedRest shift.RestSpec
		policy, parsedRest, err = factory.NewPolicyFactory().ParsePolicy(cfg.PolicyJSON)
		if err != nil {
			log.Fatalf("Failed to parse policy: %v", err)
		}
		if parsedRest.Mode != shift.RestNone {
			restPreset = parsedRest
		}
	}
	if cfg.RestPreset != "" {
		preset, ok := factory.RestPresets[cfg.RestPreset]
		if !ok {
			log.Fatalf("Unknown rest preset: %s", cfg.RestPreset)
		}
		restPreset = preset
	}

	// Record store
	records, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer records.Close()

	// Engine with a fresh process-wide week ledger
	engine := shift.NewEngine(policy, nil)

	handler := api.NewHandler(engine, records)
	handler.RestPreset = restPreset
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
