package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-06-28"
)

// APIError is a non-2xx reply from the Notion API. Callers that tolerate
// missing or forbidden resources inspect StatusCode.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFoundOrForbidden reports whether err is an APIError with a 403 or
// 404 status.
func IsNotFoundOrForbidden(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusForbidden || apiErr.StatusCode == http.StatusNotFound)
}

// Client talks to the Notion REST API.
type Client struct {
	BaseURL string
	Token   string
	Client  *http.Client

	// Notion allows an average of ~3 requests per second per integration.
	limiter *rate.Limiter
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(3), 3),
	}
}

// GetPage retrieves page metadata (properties included).
func (c *Client) GetPage(ctx context.Context, pageId string) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodGet, "/pages/"+pageId, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListBlockChildren returns one page of the top-level blocks of a page.
// Pass the previous response's NextCursor to continue; empty for the first
// page.
func (c *Client) ListBlockChildren(ctx context.Context, pageId, startCursor string) (*BlockChildrenResponse, error) {
	path := "/blocks/" + pageId + "/children"
	if startCursor != "" {
		path += "?start_cursor=" + url.QueryEscape(startCursor)
	}
	var res BlockChildrenResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListComments returns one page of the comments attached to a block.
func (c *Client) ListComments(ctx context.Context, blockId, startCursor string) (*CommentsResponse, error) {
	path := "/comments?block_id=" + url.QueryEscape(blockId)
	if startCursor != "" {
		path += "&start_cursor=" + url.QueryEscape(startCursor)
	}
	var res CommentsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetUser resolves a user id to a workspace identity.
func (c *Client) GetUser(ctx context.Context, userId string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+userId, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateComment posts a new comment.
func (c *Client) CreateComment(ctx context.Context, req *CreateCommentRequest) (*CreateCommentResponse, error) {
	var res CreateCommentResponse
	if err := c.do(ctx, http.MethodPost, "/comments", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// do sends one API request and decodes the JSON reply into out.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	resBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(resBody)}
	}

	if out != nil {
		if err := json.Unmarshal(resBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
