package bootstrap

import (
	"notion-agent-be/internal/config"
	"notion-agent-be/internal/controller"
	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/internal/service"
	"notion-agent-be/pkg/notion"
	"notion-agent-be/pkg/openai"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Exposed for main.go to flush on shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External Clients
	notionClient := notion.NewClient(cfg.Notion.BaseURL, cfg.Notion.Token)
	openaiClient := openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey)

	// 3. Services
	pageService := service.NewPageService(notionClient, sysLogger)
	commentService := service.NewCommentService(notionClient, sysLogger)
	agentService := service.NewAgentService(openaiClient, commentService, sysLogger)

	// 4. Controllers
	webhookController := controller.NewWebhookController(cfg, pageService, agentService, sysLogger)

	return &Container{
		WebhookController: webhookController,
		Logger:            sysLogger,
	}
}
