package service

import (
	"context"

	"notion-agent-be/internal/entity"
	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/pkg/notion"
)

// ICommentService writes comments to the document store. Failures are
// reported as outcome values, never as errors, so a failed write can be
// fed back into the model conversation.
type ICommentService interface {
	Write(ctx context.Context, blockId, markdown, displayName string) *entity.CommentOutcome
}

type commentService struct {
	notionClient *notion.Client
	logger       logger.ILogger
}

func NewCommentService(notionClient *notion.Client, logger logger.ILogger) ICommentService {
	return &commentService{
		notionClient: notionClient,
		logger:       logger,
	}
}

// Write submits the markdown as one comment on the given block. The full
// markdown string is kept as a single literal text run; Notion renders its
// own markdown-ish formatting from it.
func (s *commentService) Write(ctx context.Context, blockId, markdown, displayName string) *entity.CommentOutcome {
	req := &notion.CreateCommentRequest{
		Parent: notion.CommentParent{BlockId: blockId},
		RichText: []notion.RichText{
			{
				Type: "text",
				Text: &notion.TextContent{Content: markdown},
			},
		},
	}
	if displayName != "" {
		req.DisplayName = notion.NewCustomDisplayName(displayName)
	}

	res, err := s.notionClient.CreateComment(ctx, req)
	if err != nil {
		s.logger.Warn("comment_service", "comment creation failed", map[string]interface{}{
			"block_id": blockId,
			"error":    err.Error(),
		})
		return &entity.CommentOutcome{Success: false, Error: err.Error()}
	}

	s.logger.Info("comment_service", "comment created", map[string]interface{}{
		"block_id":   blockId,
		"comment_id": res.Id,
	})
	return &entity.CommentOutcome{Success: true, CommentId: res.Id}
}
