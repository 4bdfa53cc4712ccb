package service

import (
	"context"
	"encoding/json"
	"fmt"

	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/pkg/openai"
)

const toolNotionComment = "notion_comment"

// AgentRequest carries one completion round-trip: the prompt page supplies
// the system content and the commenter identity, the changed page supplies
// the user content and the fallback comment target.
type AgentRequest struct {
	Model         string
	SystemPrompt  string
	UserPrompt    string
	ChangedPageId string
	CommenterName string
}

// IAgentService drives the tool-mediated conversation with the completion
// service.
type IAgentService interface {
	Run(ctx context.Context, req *AgentRequest) (string, error)
}

type agentService struct {
	openaiClient   *openai.Client
	commentService ICommentService
	logger         logger.ILogger
}

func NewAgentService(openaiClient *openai.Client, commentService ICommentService, logger logger.ILogger) IAgentService {
	return &agentService{
		openaiClient:   openaiClient,
		commentService: commentService,
		logger:         logger,
	}
}

// notionCommentArgs is the decoded argument payload of one tool call.
type notionCommentArgs struct {
	BlockId         string `json:"block_id"`
	CommentMarkdown string `json:"comment_markdown"`
}

func commentTools() []openai.Tool {
	return []openai.Tool{
		{
			Type: "function",
			Function: openai.FunctionDefinition{
				Name:        toolNotionComment,
				Description: "Add a comment to a specific block in the Notion document",
				Parameters: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"block_id": map[string]interface{}{
							"type":        "string",
							"description": "The ID of the block to comment on (found in the block_id lines in the document)",
						},
						"comment_markdown": map[string]interface{}{
							"type":        "string",
							"description": "The comment content in Markdown format",
						},
					},
					"required": []string{"block_id", "comment_markdown"},
				},
			},
		},
	}
}

// Run walks the conversation through at most three phases: the initial
// completion with the comment tool offered, the tool dispatch phase when
// the model requested calls, and the final completion over the extended
// transcript. The final answer is also written back to the changed page as
// a comment.
func (s *agentService) Run(ctx context.Context, req *AgentRequest) (string, error) {
	messages := []openai.Message{
		{Role: openai.RoleSystem, Content: req.SystemPrompt},
		{Role: openai.RoleUser, Content: req.UserPrompt},
	}

	reply, err := s.initialTurn(ctx, req.Model, messages)
	if err != nil {
		return "", err
	}
	if len(reply.ToolCalls) == 0 {
		return reply.Content, nil
	}

	messages = append(messages, *reply)
	toolMessages, err := s.dispatchTools(ctx, req, reply.ToolCalls)
	if err != nil {
		return "", err
	}
	messages = append(messages, toolMessages...)

	return s.finalTurn(ctx, req, messages)
}

func (s *agentService) initialTurn(ctx context.Context, model string, messages []openai.Message) (*openai.Message, error) {
	reply, err := s.openaiClient.ChatCompletion(ctx, model, messages, commentTools())
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	return reply, nil
}

// dispatchTools executes each requested tool call and returns the tool
// result messages, correlated by tool call id. A failed comment write is
// reported to the model as the result content and never aborts the turn.
func (s *agentService) dispatchTools(ctx context.Context, req *AgentRequest, calls []openai.ToolCall) ([]openai.Message, error) {
	var toolMessages []openai.Message
	for _, call := range calls {
		if call.Function.Name != toolNotionComment {
			continue
		}

		var args notionCommentArgs
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", toolNotionComment, err)
		}

		outcome := s.commentService.Write(ctx, args.BlockId, args.CommentMarkdown, req.CommenterName)
		content, err := json.Marshal(outcome)
		if err != nil {
			return nil, fmt.Errorf("encode tool outcome: %w", err)
		}

		s.logger.Info("agent_service", "tool call dispatched", map[string]interface{}{
			"tool_call_id": call.Id,
			"block_id":     args.BlockId,
			"success":      outcome.Success,
		})

		toolMessages = append(toolMessages, openai.Message{
			Role:       openai.RoleTool,
			Name:       toolNotionComment,
			Content:    string(content),
			ToolCallId: call.Id,
		})
	}
	return toolMessages, nil
}

// finalTurn requests the closing completion without any tool offer and
// persists the answer as a comment on the changed page, authored with the
// prompt page's name.
func (s *agentService) finalTurn(ctx context.Context, req *AgentRequest, messages []openai.Message) (string, error) {
	final, err := s.openaiClient.ChatCompletion(ctx, req.Model, messages, nil)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if outcome := s.commentService.Write(ctx, req.ChangedPageId, final.Content, req.CommenterName); !outcome.Success {
		s.logger.Warn("agent_service", "final answer persistence failed", map[string]interface{}{
			"page_id": req.ChangedPageId,
			"error":   outcome.Error,
		})
	}
	return final.Content, nil
}
