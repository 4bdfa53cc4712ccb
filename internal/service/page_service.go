package service

import (
	"context"
	"fmt"
	"strings"

	"notion-agent-be/internal/entity"
	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/internal/repository/memory"
	"notion-agent-be/pkg/notion"
	"notion-agent-be/pkg/notionmd"
)

// IPageService retrieves Notion pages as normalized markdown documents.
type IPageService interface {
	GetPage(ctx context.Context, pageId string) (*entity.Page, error)
}

type pageService struct {
	notionClient *notion.Client
	logger       logger.ILogger
}

func NewPageService(notionClient *notion.Client, logger logger.ILogger) IPageService {
	return &pageService{
		notionClient: notionClient,
		logger:       logger,
	}
}

// GetPage fetches the page title and all top-level blocks, renders them to
// markdown with block_id markers, and merges each block's comments below
// it. Author identities are cached for the duration of this call only.
func (s *pageService) GetPage(ctx context.Context, pageId string) (*entity.Page, error) {
	page, err := s.notionClient.GetPage(ctx, pageId)
	if err != nil {
		return nil, fmt.Errorf("get page %s: %w", pageId, err)
	}
	title := extractPageTitle(page.Properties)

	var blocks []notion.Block
	cursor := ""
	for {
		res, err := s.notionClient.ListBlockChildren(ctx, pageId, cursor)
		if err != nil {
			return nil, fmt.Errorf("list blocks of page %s: %w", pageId, err)
		}
		blocks = append(blocks, res.Results...)
		if !res.HasMore {
			break
		}
		cursor = res.NextCursor
	}

	users := memory.NewUserRepository()

	var lines []string
	for i := range blocks {
		blockLines := notionmd.RenderBlock(&blocks[i])
		if blockLines == nil {
			continue
		}
		lines = append(lines, blockLines...)

		commentLines, err := s.blockCommentLines(ctx, blocks[i].Id, users)
		if err != nil {
			return nil, err
		}
		lines = append(lines, commentLines...)
		lines = append(lines, "")
	}

	s.logger.Info("page_service", "page fetched", map[string]interface{}{
		"page_id": pageId,
		"title":   title,
		"blocks":  len(blocks),
	})

	return &entity.Page{
		Id:       pageId,
		Title:    title,
		Markdown: strings.TrimSpace(strings.Join(lines, "\n")),
	}, nil
}

// blockCommentLines renders all comments attached to a block. A forbidden
// or missing comment thread yields no lines; any other store failure
// propagates.
func (s *pageService) blockCommentLines(ctx context.Context, blockId string, users *memory.UserRepository) ([]string, error) {
	comments, err := s.listAllComments(ctx, blockId)
	if err != nil {
		return nil, fmt.Errorf("list comments of block %s: %w", blockId, err)
	}

	var lines []string
	for _, comment := range comments {
		lines = append(lines, notionmd.CommentIdPrefix+comment.Id)

		if comment.CreatedBy.Id == "" {
			lines = append(lines, fmt.Sprintf("**Comment by Unknown User at %s:**", comment.CreatedTime))
		} else {
			user := s.resolveUser(ctx, comment.CreatedBy.Id, users)
			lines = append(lines, notionmd.CommentHeader(user, comment.CreatedTime))
		}
		lines = append(lines, notionmd.RenderRichText(comment.RichText))
	}
	return lines, nil
}

func (s *pageService) listAllComments(ctx context.Context, blockId string) ([]notion.Comment, error) {
	var comments []notion.Comment
	cursor := ""
	for {
		res, err := s.notionClient.ListComments(ctx, blockId, cursor)
		if err != nil {
			// Blocks the integration cannot read comments on are treated
			// as having none.
			if notion.IsNotFoundOrForbidden(err) {
				return comments, nil
			}
			return nil, err
		}
		comments = append(comments, res.Results...)
		if !res.HasMore {
			break
		}
		cursor = res.NextCursor
	}
	return comments, nil
}

// resolveUser returns the cached identity for a user id, fetching it on a
// miss. A failed lookup degrades to the Unknown User sentinel instead of
// failing the fetch.
func (s *pageService) resolveUser(ctx context.Context, userId string, users *memory.UserRepository) *notion.User {
	if user, found := users.Get(userId); found {
		return user
	}

	user, err := s.notionClient.GetUser(ctx, userId)
	if err != nil {
		s.logger.Warn("page_service", "user lookup failed, using fallback", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		user = &notion.User{Id: userId, Name: "Unknown User"}
	}
	users.Save(user)
	return user
}

// extractPageTitle finds the title-typed property, falling back to the
// conventional Name/Title property names, then to "Untitled".
func extractPageTitle(properties map[string]notion.PageProperty) string {
	for _, prop := range properties {
		if prop.Type == "title" && len(prop.Title) > 0 {
			return plainTitle(prop.Title)
		}
	}

	for _, name := range []string{"Name", "Title", "name", "title"} {
		if prop, ok := properties[name]; ok && prop.Type == "title" && len(prop.Title) > 0 {
			return plainTitle(prop.Title)
		}
	}

	return "Untitled"
}

func plainTitle(spans []notion.RichText) string {
	var sb strings.Builder
	for _, span := range spans {
		sb.WriteString(span.PlainText)
	}
	return sb.String()
}
