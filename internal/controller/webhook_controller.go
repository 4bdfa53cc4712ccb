package controller

import (
	"encoding/json"
	"os"
	"path/filepath"

	"notion-agent-be/internal/config"
	"notion-agent-be/internal/dto"
	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/internal/pkg/serverutils"
	"notion-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Handle(ctx *fiber.Ctx) error
}

type webhookController struct {
	cfg          *config.Config
	pageService  service.IPageService
	agentService service.IAgentService
	logger       logger.ILogger
}

func NewWebhookController(
	cfg *config.Config,
	pageService service.IPageService,
	agentService service.IAgentService,
	logger logger.ILogger,
) IWebhookController {
	return &webhookController{
		cfg:          cfg,
		pageService:  pageService,
		agentService: agentService,
		logger:       logger,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Post("/notion", c.Handle)
}

// Handle processes one Notion automation trigger end to end. All failures
// are reported in-band as {"error", "event"} envelopes with HTTP 200; the
// trigger transport never sees a fault.
func (c *webhookController) Handle(ctx *fiber.Ctx) error {
	rawBody := make([]byte, len(ctx.Body()))
	copy(rawBody, ctx.Body())

	// 1. Shared-secret check, when configured
	if c.cfg.Webhook.ClientToken != "" {
		provided := ctx.Query("client_token")
		if provided == "" || provided != c.cfg.Webhook.ClientToken {
			return c.errorEnvelope(ctx, "Invalid client token", rawBody)
		}
	}

	// 2. Prompt page id
	promptId := ctx.Query("prompt_id")
	if promptId == "" {
		return c.errorEnvelope(ctx, "Missing prompt_id parameter", rawBody)
	}

	// 3. Changed page id from the trigger body
	var req dto.WebhookRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return c.errorEnvelope(ctx, "Invalid request body", rawBody)
	}
	if err := serverutils.ValidateRequest(req); err != nil || req.Data.Id == "" {
		return c.errorEnvelope(ctx, "Missing page ID in request data", rawBody)
	}

	// 4. Resolve both documents
	promptPage, err := c.pageService.GetPage(ctx.Context(), promptId)
	if err != nil {
		return c.errorEnvelope(ctx, err.Error(), rawBody)
	}
	changedPage, err := c.pageService.GetPage(ctx.Context(), req.Data.Id)
	if err != nil {
		return c.errorEnvelope(ctx, err.Error(), rawBody)
	}

	c.dumpDebugArtifacts(promptPage.Title, promptPage.Markdown, changedPage.Title, changedPage.Markdown)

	model := ctx.Query("model", c.cfg.OpenAI.DefaultModel)

	// 5. Run the completion round-trip
	result, err := c.agentService.Run(ctx.Context(), &service.AgentRequest{
		Model:         model,
		SystemPrompt:  promptPage.Markdown,
		UserPrompt:    changedPage.Markdown,
		ChangedPageId: changedPage.Id,
		CommenterName: promptPage.Title,
	})
	if err != nil {
		return c.errorEnvelope(ctx, err.Error(), rawBody)
	}

	requestId := req.Data.RequestId
	if requestId == "" {
		requestId = uuid.NewString()
	}

	return ctx.JSON(dto.WebhookResponse{
		Result:    result,
		RequestId: requestId,
	})
}

func (c *webhookController) errorEnvelope(ctx *fiber.Ctx, message string, rawBody []byte) error {
	c.logger.Error("webhook_controller", "request failed", map[string]interface{}{
		"error": message,
	})

	event := json.RawMessage(rawBody)
	if !json.Valid(rawBody) {
		quoted, _ := json.Marshal(string(rawBody))
		event = quoted
	}
	return ctx.JSON(dto.WebhookErrorResponse{
		Error: message,
		Event: event,
	})
}

// dumpDebugArtifacts writes the rendered documents to disk when a dump
// directory is configured.
func (c *webhookController) dumpDebugArtifacts(promptTitle, promptMarkdown, changedTitle, changedMarkdown string) {
	dir := c.cfg.Webhook.DebugDumpDir
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		c.logger.Warn("webhook_controller", "debug dump dir creation failed", map[string]interface{}{"error": err.Error()})
		return
	}
	prompt := "# " + promptTitle + "\n\n" + promptMarkdown
	changed := "# " + changedTitle + "\n\n" + changedMarkdown
	_ = os.WriteFile(filepath.Join(dir, "prompt.md"), []byte(prompt), 0644)
	_ = os.WriteFile(filepath.Join(dir, "changed.md"), []byte(changed), 0644)
}
