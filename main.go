package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"favigen/config"
	"favigen/deploy"
	"favigen/favicon"
	"favigen/watcher"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and regenerate when the source image changes")
	configPath := flag.String("config", "favigen.yaml", "path to the configuration file")
	flag.Parse()

	fmt.Println("Favigen - Favicon Asset Generator")
	fmt.Println("=================================")

	// Optional .env with FAVIGEN_* overrides; absence is fine
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	// Fall back to built-in defaults when there is no config file
	cfg := config.Default()
	if _, err := os.Stat(*configPath); err == nil {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		log.Printf("Loaded config: %s", *configPath)
	}

	gen := favicon.NewGenerator(cfg)

	log.Printf("Creating favicon files from %s...", cfg.Source.Path)
	if err := gen.Generate(); err != nil {
		log.Fatalf("Favicon generation failed: %v", err)
	}

	if err := deploy.NewDeployer(cfg).Deploy(); err != nil {
		log.Fatalf("Deployment failed: %v", err)
	}

	if !*watch && !cfg.Watch.Enabled {
		log.Println("✅ All favicon files created successfully!")
		return
	}

	// Watch mode: stay up and regenerate on change
	w, err := watcher.NewWatcher(cfg, gen)
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}

	if err := w.Start(); err != nil {
		log.Fatalf("Failed to start watcher: %v", err)
	}

	log.Println("Watcher started. Monitoring for source image changes...")
	log.Println("Press Ctrl+C to stop")

	// Listen for events
	go func() {
		for event := range w.Events() {
			log.Printf("📄 Event: %v - %s", event.Type, event.FilePath)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	w.Stop()
}
