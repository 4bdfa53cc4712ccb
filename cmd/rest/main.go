package main

import (
	"context"
	"log"

	"notion-agent-be/internal/bootstrap"
	"notion-agent-be/internal/config"
	"notion-agent-be/internal/server"
	"notion-agent-be/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()
	if cfg.Notion.Token == "" {
		log.Fatal(color.RedString("NOTION_TOKEN environment variable is required"))
	}
	if cfg.OpenAI.APIKey == "" {
		log.Fatal(color.RedString("OPENAI_API_KEY environment variable is required"))
	}
	if cfg.Webhook.ClientToken == "" {
		color.Yellow("CLIENT_TOKEN is not set, webhook requests are unauthenticated")
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	color.Green("Notion agent listening on port %s (model: %s)", cfg.App.Port, cfg.OpenAI.DefaultModel)
	log.Fatal(srv.Run())
}
