package notionmd

import (
	"strings"
	"testing"

	"notion-agent-be/pkg/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		markdown    string
		wantTypes   []string
		wantContent []string
	}{
		{
			name:        "paragraph",
			markdown:    "just text",
			wantTypes:   []string{notion.BlockTypeParagraph},
			wantContent: []string{"just text"},
		},
		{
			name:        "heading levels",
			markdown:    "# One\n## Two\n### Three",
			wantTypes:   []string{notion.BlockTypeHeading1, notion.BlockTypeHeading2, notion.BlockTypeHeading3},
			wantContent: []string{"One", "Two", "Three"},
		},
		{
			name:        "deep heading clamps to level three",
			markdown:    "##### Deep",
			wantTypes:   []string{notion.BlockTypeHeading3},
			wantContent: []string{"Deep"},
		},
		{
			name:        "bullet and quote",
			markdown:    "- item\n> quoted",
			wantTypes:   []string{notion.BlockTypeBulletedItem, notion.BlockTypeQuote},
			wantContent: []string{"item", "quoted"},
		},
		{
			name:        "numbered items",
			markdown:    "1. first\n2. second",
			wantTypes:   []string{notion.BlockTypeNumberedItem, notion.BlockTypeNumberedItem},
			wantContent: []string{"first", "second"},
		},
		{
			name:        "blank lines are separators",
			markdown:    "a\n\n\nb",
			wantTypes:   []string{notion.BlockTypeParagraph, notion.BlockTypeParagraph},
			wantContent: []string{"a", "b"},
		},
		{
			name:        "code fence with language",
			markdown:    "```python\nprint(1)\nprint(2)\n```\nafter",
			wantTypes:   []string{notion.BlockTypeCode, notion.BlockTypeParagraph},
			wantContent: []string{"print(1)\nprint(2)", "after"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.markdown)
			require.Len(t, blocks, len(tt.wantTypes))
			for i, block := range blocks {
				assert.Equal(t, tt.wantTypes[i], block.Type)
				content := block.Content()
				require.Len(t, content, 1)
				require.NotNil(t, content[0].Text)
				assert.Equal(t, tt.wantContent[i], content[0].Text.Content)
			}
		})
	}
}

func TestParseCodeFenceLanguage(t *testing.T) {
	blocks := Parse("```go\na := 1\n```")
	require.Len(t, blocks, 1)
	require.NotNil(t, blocks[0].Code)
	assert.Equal(t, "go", blocks[0].Code.Language)
}

func TestParseNeverAssignsIds(t *testing.T) {
	for _, block := range Parse("# H\npara\n- b") {
		assert.Empty(t, block.Id)
	}
}

// Rendering a parsed document and parsing it again must preserve the
// (type, content) sequence; ids are not reconstructed.
func TestRenderParseRoundTrip(t *testing.T) {
	original := []notion.Block{
		textBlock("r1", notion.BlockTypeHeading1, "Title"),
		textBlock("r2", notion.BlockTypeParagraph, "Some prose."),
		textBlock("r3", notion.BlockTypeBulletedItem, "point"),
		textBlock("r4", notion.BlockTypeNumberedItem, "step"),
		textBlock("r5", notion.BlockTypeQuote, "said so"),
	}

	rendered := RenderBlocks(original)
	parsed := parseWithoutIdLines(t, rendered)

	require.Len(t, parsed, len(original))
	for i := range original {
		assert.Equal(t, original[i].Type, parsed[i].Type, "block %d type", i)
		wantText := original[i].Content()[0].PlainText
		assert.Equal(t, wantText, parsed[i].Content()[0].Text.Content, "block %d content", i)
	}

	// Re-rendering the parsed sequence reproduces the markdown body
	// byte-for-byte once the id marker lines are removed.
	rerendered := RenderBlocks(parsed)
	assert.Equal(t, stripIdLines(rendered), stripIdLines(rerendered))
}

// parseWithoutIdLines strips the block_id marker lines a rendered document
// carries; Parse is outbound-only and would read them as paragraphs.
func parseWithoutIdLines(t *testing.T, rendered string) []notion.Block {
	t.Helper()
	return Parse(stripIdLines(rendered))
}

func stripIdLines(rendered string) string {
	var kept []string
	for _, line := range strings.Split(rendered, "\n") {
		if strings.HasPrefix(line, BlockIdPrefix) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
