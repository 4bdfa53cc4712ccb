package notion

// Block type identifiers supported by the converter. Anything else is
// skipped during rendering.
const (
	BlockTypeParagraph    = "paragraph"
	BlockTypeHeading1     = "heading_1"
	BlockTypeHeading2     = "heading_2"
	BlockTypeHeading3     = "heading_3"
	BlockTypeBulletedItem = "bulleted_list_item"
	BlockTypeNumberedItem = "numbered_list_item"
	BlockTypeCode         = "code"
	BlockTypeQuote        = "quote"
)

// RichText is one styled text run inside a block or comment.
type RichText struct {
	Type        string       `json:"type,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
	PlainText   string       `json:"plain_text,omitempty"`
	Href        string       `json:"href,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
	Link    *TextLink `json:"link,omitempty"`
}

type TextLink struct {
	URL string `json:"url"`
}

// Annotations carries the style flags of a text run.
type Annotations struct {
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Code          bool   `json:"code,omitempty"`
	Color         string `json:"color,omitempty"`
}

// Block is one structural element of a page. Exactly one of the typed
// payload fields is populated, matching the Type discriminator.
type Block struct {
	Object string `json:"object,omitempty"`
	Id     string `json:"id,omitempty"`
	Type   string `json:"type"`

	Paragraph        *RichTextBlock `json:"paragraph,omitempty"`
	Heading1         *RichTextBlock `json:"heading_1,omitempty"`
	Heading2         *RichTextBlock `json:"heading_2,omitempty"`
	Heading3         *RichTextBlock `json:"heading_3,omitempty"`
	BulletedListItem *RichTextBlock `json:"bulleted_list_item,omitempty"`
	NumberedListItem *RichTextBlock `json:"numbered_list_item,omitempty"`
	Code             *CodeBlock     `json:"code,omitempty"`
	Quote            *RichTextBlock `json:"quote,omitempty"`
}

type RichTextBlock struct {
	RichText []RichText `json:"rich_text"`
	Color    string     `json:"color,omitempty"`
}

type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// Content returns the rich text payload matching the block's type, or nil
// for unsupported types.
func (b *Block) Content() []RichText {
	switch b.Type {
	case BlockTypeParagraph:
		if b.Paragraph != nil {
			return b.Paragraph.RichText
		}
	case BlockTypeHeading1:
		if b.Heading1 != nil {
			return b.Heading1.RichText
		}
	case BlockTypeHeading2:
		if b.Heading2 != nil {
			return b.Heading2.RichText
		}
	case BlockTypeHeading3:
		if b.Heading3 != nil {
			return b.Heading3.RichText
		}
	case BlockTypeBulletedItem:
		if b.BulletedListItem != nil {
			return b.BulletedListItem.RichText
		}
	case BlockTypeNumberedItem:
		if b.NumberedListItem != nil {
			return b.NumberedListItem.RichText
		}
	case BlockTypeCode:
		if b.Code != nil {
			return b.Code.RichText
		}
	case BlockTypeQuote:
		if b.Quote != nil {
			return b.Quote.RichText
		}
	}
	return nil
}

// HeadingLevel returns 1-3 for heading blocks, 0 otherwise.
func (b *Block) HeadingLevel() int {
	switch b.Type {
	case BlockTypeHeading1:
		return 1
	case BlockTypeHeading2:
		return 2
	case BlockTypeHeading3:
		return 3
	}
	return 0
}

// BlockChildrenResponse is one page of a block children listing.
type BlockChildrenResponse struct {
	Results    []Block `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// Comment is a threaded comment attached to a block.
type Comment struct {
	Id          string     `json:"id"`
	CreatedTime string     `json:"created_time,omitempty"`
	CreatedBy   UserRef    `json:"created_by"`
	RichText    []RichText `json:"rich_text"`
}

type UserRef struct {
	Id string `json:"id"`
}

// CommentsResponse is one page of a comment listing.
type CommentsResponse struct {
	Results    []Comment `json:"results"`
	HasMore    bool      `json:"has_more"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// User is a resolved workspace identity.
type User struct {
	Id     string  `json:"id"`
	Name   string  `json:"name,omitempty"`
	Type   string  `json:"type,omitempty"`
	Person *Person `json:"person,omitempty"`
}

type Person struct {
	Email string `json:"email,omitempty"`
}

// Email returns the person email when present, otherwise "".
func (u *User) Email() string {
	if u.Type == "person" && u.Person != nil {
		return u.Person.Email
	}
	return ""
}

// Page is the page metadata object; only properties matter here.
type Page struct {
	Id         string                  `json:"id"`
	Properties map[string]PageProperty `json:"properties"`
}

type PageProperty struct {
	Id    string     `json:"id,omitempty"`
	Type  string     `json:"type"`
	Title []RichText `json:"title,omitempty"`
}

// CreateCommentRequest is the comment creation payload.
type CreateCommentRequest struct {
	Parent      CommentParent `json:"parent"`
	RichText    []RichText    `json:"rich_text"`
	DisplayName *DisplayName  `json:"display_name,omitempty"`
}

type CommentParent struct {
	BlockId string `json:"block_id"`
}

// DisplayName overrides the comment author name shown in the workspace.
type DisplayName struct {
	Type   string      `json:"type"`
	Custom *CustomName `json:"custom,omitempty"`
}

type CustomName struct {
	Name string `json:"name"`
}

// NewCustomDisplayName builds the custom display name payload.
func NewCustomDisplayName(name string) *DisplayName {
	return &DisplayName{
		Type:   "custom",
		Custom: &CustomName{Name: name},
	}
}

// CreateCommentResponse is the store's reply to a comment creation.
type CreateCommentResponse struct {
	Id string `json:"id"`
}
