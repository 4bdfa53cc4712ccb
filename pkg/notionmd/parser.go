package notionmd

import (
	"strings"

	"notion-agent-be/pkg/notion"
)

// Parse converts markdown into block objects suitable for the Notion API.
// It is the outbound direction only: block ids are never reconstructed,
// and Notion caps headings at three levels so deeper ones clamp to
// heading_3. Blank lines are separators and produce nothing.
func Parse(markdown string) []notion.Block {
	var blocks []notion.Block
	lines := strings.Split(markdown, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#"):
			level := len(line) - len(strings.TrimLeft(line, "#"))
			content := strings.TrimSpace(strings.TrimLeft(line, "# "))
			blocks = append(blocks, headingBlock(level, content))

		case strings.HasPrefix(line, "```"):
			language := strings.TrimSpace(line[3:])
			var codeLines []string
			for i++; i < len(lines); i++ {
				if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
					break
				}
				codeLines = append(codeLines, lines[i])
			}
			blocks = append(blocks, notion.Block{
				Object: "block",
				Type:   notion.BlockTypeCode,
				Code: &notion.CodeBlock{
					RichText: textRun(strings.Join(codeLines, "\n")),
					Language: language,
				},
			})

		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, notion.Block{
				Object: "block",
				Type:   notion.BlockTypeBulletedItem,
				BulletedListItem: &notion.RichTextBlock{
					RichText: textRun(strings.TrimSpace(line[2:])),
					Color:    "default",
				},
			})

		case isNumberedItem(line):
			blocks = append(blocks, notion.Block{
				Object: "block",
				Type:   notion.BlockTypeNumberedItem,
				NumberedListItem: &notion.RichTextBlock{
					RichText: textRun(strings.TrimSpace(line[3:])),
					Color:    "default",
				},
			})

		case strings.HasPrefix(line, "> "):
			blocks = append(blocks, notion.Block{
				Object: "block",
				Type:   notion.BlockTypeQuote,
				Quote: &notion.RichTextBlock{
					RichText: textRun(strings.TrimSpace(line[2:])),
					Color:    "default",
				},
			})

		default:
			blocks = append(blocks, notion.Block{
				Object: "block",
				Type:   notion.BlockTypeParagraph,
				Paragraph: &notion.RichTextBlock{
					RichText: textRun(line),
					Color:    "default",
				},
			})
		}
	}

	return blocks
}

func headingBlock(level int, content string) notion.Block {
	body := &notion.RichTextBlock{
		RichText: textRun(content),
		Color:    "default",
	}
	block := notion.Block{Object: "block"}
	switch {
	case level <= 1:
		block.Type = notion.BlockTypeHeading1
		block.Heading1 = body
	case level == 2:
		block.Type = notion.BlockTypeHeading2
		block.Heading2 = body
	default:
		block.Type = notion.BlockTypeHeading3
		block.Heading3 = body
	}
	return block
}

func isNumberedItem(line string) bool {
	return len(line) >= 3 &&
		line[0] >= '1' && line[0] <= '9' &&
		line[1] == '.' && line[2] == ' '
}

func textRun(content string) []notion.RichText {
	return []notion.RichText{
		{
			Type: "text",
			Text: &notion.TextContent{Content: content},
		},
	}
}
