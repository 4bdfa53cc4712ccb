package notionmd

import (
	"fmt"
	"strings"

	"notion-agent-be/pkg/notion"
)

// BlockIdPrefix introduces the stable id line of every rendered block.
const BlockIdPrefix = "block_id: "

// CommentIdPrefix introduces the id line of every rendered comment.
const CommentIdPrefix = "comment block id: "

// RenderBlocks converts blocks to markdown, each one introduced by its
// block_id line. Blocks without renderable text are skipped. Trailing
// blank lines are trimmed.
func RenderBlocks(blocks []notion.Block) string {
	var lines []string
	for i := range blocks {
		blockLines := RenderBlock(&blocks[i])
		if blockLines == nil {
			continue
		}
		lines = append(lines, blockLines...)
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// RenderBlock returns the markdown lines for one block, starting with the
// block_id marker. Returns nil when the block is of an unsupported type or
// has no visible text, so callers can skip it.
func RenderBlock(b *notion.Block) []string {
	content := RenderRichText(b.Content())
	if strings.TrimSpace(content) == "" {
		return nil
	}

	lines := []string{BlockIdPrefix + b.Id}

	switch b.Type {
	case notion.BlockTypeParagraph:
		lines = append(lines, content)
	case notion.BlockTypeHeading1, notion.BlockTypeHeading2, notion.BlockTypeHeading3:
		lines = append(lines, strings.Repeat("#", b.HeadingLevel())+" "+content)
	case notion.BlockTypeBulletedItem:
		lines = append(lines, "- "+content)
	case notion.BlockTypeNumberedItem:
		// Notion does not expose list position, so every item renders as
		// "1." and ordering is left to the reader.
		lines = append(lines, "1. "+content)
	case notion.BlockTypeCode:
		language := ""
		if b.Code != nil {
			language = b.Code.Language
		}
		lines = append(lines, "```"+language, content, "```")
	case notion.BlockTypeQuote:
		lines = append(lines, "> "+content)
	default:
		return nil
	}

	return lines
}

// RenderRichText concatenates text runs, applying style wrappers in a fixed
// order: bold, italic, strikethrough, code, then the hyperlink around the
// styled result.
func RenderRichText(spans []notion.RichText) string {
	var sb strings.Builder
	for _, span := range spans {
		content := plainText(span)
		if span.Annotations != nil {
			if span.Annotations.Bold {
				content = "**" + content + "**"
			}
			if span.Annotations.Italic {
				content = "*" + content + "*"
			}
			if span.Annotations.Strikethrough {
				content = "~~" + content + "~~"
			}
			if span.Annotations.Code {
				content = "`" + content + "`"
			}
		}
		if href := spanHref(span); href != "" {
			content = "[" + content + "](" + href + ")"
		}
		sb.WriteString(content)
	}
	return sb.String()
}

// CommentHeader formats the author line placed above a rendered comment
// body. The email clause is omitted when the user has none.
func CommentHeader(user *notion.User, createdTime string) string {
	name := user.Name
	if name == "" {
		name = "Unknown User"
	}
	emailPart := ""
	if email := user.Email(); email != "" {
		emailPart = fmt.Sprintf(" %q", email)
	}
	return fmt.Sprintf("**Comment by %q%s (%s) at %s:**", name, emailPart, user.Id, createdTime)
}

func plainText(span notion.RichText) string {
	if span.PlainText != "" {
		return span.PlainText
	}
	if span.Text != nil {
		return span.Text.Content
	}
	return ""
}

func spanHref(span notion.RichText) string {
	if span.Href != "" {
		return span.Href
	}
	if span.Text != nil && span.Text.Link != nil {
		return span.Text.Link.URL
	}
	return ""
}
