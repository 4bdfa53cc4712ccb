package entity

// Page is the normalized record of one fetched Notion page: its id, the
// resolved title, and the markdown rendering with block_id markers and
// merged comments. Built per request, never cached.
type Page struct {
	Id       string
	Title    string
	Markdown string
}

// CommentOutcome is the result of one comment write. Failures are carried
// as data so the model conversation can continue.
type CommentOutcome struct {
	Success   bool   `json:"success"`
	CommentId string `json:"comment_id,omitempty"`
	Error     string `json:"error,omitempty"`
}
