package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notion-agent-be/internal/config"
	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/internal/service"
	"notion-agent-be/pkg/notion"
	"notion-agent-be/pkg/openai"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// notionFixture serves two pages: the prompt page with a single paragraph
// reading "Reply only with OK" and the changed page with "ping". Comment
// listings are empty; comment creation is recorded.
func notionFixture(t *testing.T, created *[]notion.CreateCommentRequest) *httptest.Server {
	t.Helper()

	pageBlocks := map[string]notion.Block{
		"prompt-page": {
			Id:   "pb-1",
			Type: notion.BlockTypeParagraph,
			Paragraph: &notion.RichTextBlock{
				RichText: []notion.RichText{{Type: "text", PlainText: "Reply only with OK"}},
			},
		},
		"changed-page": {
			Id:   "cb-1",
			Type: notion.BlockTypeParagraph,
			Paragraph: &notion.RichTextBlock{
				RichText: []notion.RichText{{Type: "text", PlainText: "ping"}},
			},
		},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/pages/"):
			pageId := strings.TrimPrefix(r.URL.Path, "/pages/")
			json.NewEncoder(w).Encode(notion.Page{
				Id: pageId,
				Properties: map[string]notion.PageProperty{
					"title": {Type: "title", Title: []notion.RichText{{PlainText: "Title of " + pageId}}},
				},
			})

		case strings.HasPrefix(r.URL.Path, "/blocks/"):
			pageId := strings.TrimPrefix(r.URL.Path, "/blocks/")
			pageId = strings.TrimSuffix(pageId, "/children")
			res := notion.BlockChildrenResponse{}
			if block, ok := pageBlocks[pageId]; ok {
				res.Results = []notion.Block{block}
			}
			json.NewEncoder(w).Encode(res)

		case r.URL.Path == "/comments" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(notion.CommentsResponse{})

		case r.URL.Path == "/comments" && r.Method == http.MethodPost:
			var req notion.CreateCommentRequest
			json.NewDecoder(r.Body).Decode(&req)
			if created != nil {
				*created = append(*created, req)
			}
			json.NewEncoder(w).Encode(notion.CreateCommentResponse{Id: "new-comment"})

		default:
			http.Error(w, "unexpected path "+r.URL.Path, http.StatusTeapot)
		}
	}))
}

func openaiFixture(t *testing.T, responses []string, requests *[]map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*requests = append(*requests, body)
		idx := len(*requests) - 1
		require.Less(t, idx, len(responses))
		w.Write([]byte(responses[idx]))
	}))
}

func newTestApp(cfg *config.Config, notionURL, openaiURL string) *fiber.App {
	log := logger.NewNoopLogger()
	notionClient := notion.NewClient(notionURL, "t")

	pageService := service.NewPageService(notionClient, log)
	commentService := service.NewCommentService(notionClient, log)
	agentService := service.NewAgentService(openai.NewClient(openaiURL, "k"), commentService, log)

	ctrl := NewWebhookController(cfg, pageService, agentService, log)

	app := fiber.New()
	api := app.Group("/api")
	ctrl.RegisterRoutes(api)
	return app
}

func testConfig() *config.Config {
	return &config.Config{
		OpenAI: config.OpenAIConfig{DefaultModel: "gpt-4o"},
		Webhook: config.WebhookConfig{
			ClientToken: "secret",
		},
	}
}

func postWebhook(t *testing.T, app *fiber.App, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestWebhookEndToEnd(t *testing.T) {
	var created []notion.CreateCommentRequest
	notionSrv := notionFixture(t, &created)
	defer notionSrv.Close()

	var llmRequests []map[string]interface{}
	llmSrv := openaiFixture(t, []string{
		`{"choices":[{"message":{"role":"assistant","content":"OK"},"finish_reason":"stop"}]}`,
	}, &llmRequests)
	defer llmSrv.Close()

	app := newTestApp(testConfig(), notionSrv.URL, llmSrv.URL)

	status, body := postWebhook(t, app,
		"/api/webhook/v1/notion?client_token=secret&prompt_id=prompt-page",
		`{"data":{"id":"changed-page","request_id":"req-1"}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body["result"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Empty(t, created, "no tool calls, nothing persisted")

	require.Len(t, llmRequests, 1)
	messages := llmRequests[0]["messages"].([]interface{})
	require.Len(t, messages, 2)
	system := messages[0].(map[string]interface{})
	user := messages[1].(map[string]interface{})
	assert.Equal(t, "system", system["role"])
	assert.Contains(t, system["content"], "Reply only with OK")
	assert.Contains(t, system["content"], "block_id: pb-1")
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], "ping")
	assert.Equal(t, "gpt-4o", llmRequests[0]["model"])
}

func TestWebhookModelOverride(t *testing.T) {
	notionSrv := notionFixture(t, nil)
	defer notionSrv.Close()

	var llmRequests []map[string]interface{}
	llmSrv := openaiFixture(t, []string{
		`{"choices":[{"message":{"role":"assistant","content":"OK"}}]}`,
	}, &llmRequests)
	defer llmSrv.Close()

	app := newTestApp(testConfig(), notionSrv.URL, llmSrv.URL)

	status, _ := postWebhook(t, app,
		"/api/webhook/v1/notion?client_token=secret&prompt_id=prompt-page&model=gpt-4o-mini",
		`{"data":{"id":"changed-page"}}`)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, llmRequests, 1)
	assert.Equal(t, "gpt-4o-mini", llmRequests[0]["model"])
}

func TestWebhookInvalidClientToken(t *testing.T) {
	app := newTestApp(testConfig(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	status, body := postWebhook(t, app,
		"/api/webhook/v1/notion?client_token=wrong&prompt_id=prompt-page",
		`{"data":{"id":"changed-page"}}`)

	assert.Equal(t, http.StatusOK, status, "failures are in-band")
	assert.Equal(t, "Invalid client token", body["error"])
	assert.NotNil(t, body["event"], "error envelope echoes the trigger payload")
}

func TestWebhookMissingPromptId(t *testing.T) {
	app := newTestApp(testConfig(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	status, body := postWebhook(t, app,
		"/api/webhook/v1/notion?client_token=secret",
		`{"data":{"id":"changed-page"}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Missing prompt_id parameter", body["error"])
}

func TestWebhookMissingChangedPageId(t *testing.T) {
	app := newTestApp(testConfig(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	status, body := postWebhook(t, app,
		"/api/webhook/v1/notion?client_token=secret&prompt_id=prompt-page",
		`{"data":{"request_id":"req-1"}}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Missing page ID in request data", body["error"])
}

func TestWebhookGeneratedRequestId(t *testing.T) {
	notionSrv := notionFixture(t, nil)
	defer notionSrv.Close()

	var llmRequests []map[string]interface{}
	llmSrv := openaiFixture(t, []string{
		`{"choices":[{"message":{"role":"assistant","content":"OK"}}]}`,
	}, &llmRequests)
	defer llmSrv.Close()

	app := newTestApp(testConfig(), notionSrv.URL, llmSrv.URL)

	_, body := postWebhook(t, app,
		"/api/webhook/v1/notion?client_token=secret&prompt_id=prompt-page",
		`{"data":{"id":"changed-page"}}`)

	assert.NotEmpty(t, body["request_id"], "a request id is generated when the trigger has none")
}
