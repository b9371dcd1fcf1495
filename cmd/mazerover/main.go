// Package main is the entry point for the maze rover.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dkaspar/mazerover/internal/mission"
	"github.com/dkaspar/mazerover/internal/telemetry"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_MAZEROVER_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	ctx := context.Background()

	cfg, err := mission.FromEnv()
	if err != nil {
		log.Fatalf("Bad configuration: %v", err)
	}

	// Initialize telemetry
	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Mission will run without observability")
			// Continue without telemetry - the rover still works
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	stats, err := mission.New(cfg).Run(ctx)
	if err != nil {
		log.Fatalf("Mission error: %v", err)
	}

	fmt.Println(stats.FinalMap)
	fmt.Println(stats.Summary())
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_MAZEROVER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_MAZEROVER_DATASET")
	if dataset == "" {
		dataset = "mazerover" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
