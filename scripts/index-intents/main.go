package main

import (
	"context"
	"fmt"
	"os"

	"assistant-kit/config"
	"assistant-kit/internal/app"
	"assistant-kit/pkg/log"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/index-intents/main.go <path/to/config.yaml>")
		fmt.Println("Example: go run scripts/index-intents/main.go config/config.yaml")
		os.Exit(1)
	}
	configPath := os.Args[1]

	// Load config
	os.Setenv("CONFIG_PATH", configPath)
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	logger.Infof(ctx, "Indexing %s into Qdrant collection %s (%s embeddings)...",
		cfg.Router.CatalogPath, cfg.Qdrant.CollectionName, cfg.Embedding.Provider)

	n, err := app.IndexCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf(ctx, "Failed to index intents: %v", err)
	}

	logger.Infof(ctx, "Index complete! %d intents embedded.", n)
}
