package service

import (
	"context"
	"net/http"
	"testing"

	"notion-agent-be/internal/pkg/logger"
	"notion-agent-be/pkg/notion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSubmitsMarkdownAsSingleRun(t *testing.T) {
	store := &fakeNotion{}
	srv := store.server(t)
	defer srv.Close()

	svc := NewCommentService(notion.NewClient(srv.URL, "t"), logger.NewNoopLogger())
	outcome := svc.Write(context.Background(), "b1", "**Bold** and `code`", "Agent")

	assert.True(t, outcome.Success)
	assert.Equal(t, "created-1", outcome.CommentId)
	assert.Empty(t, outcome.Error)

	require.Len(t, store.createdComms, 1)
	created := store.createdComms[0]
	require.Len(t, created.RichText, 1, "full markdown kept as one literal run")
	assert.Equal(t, "**Bold** and `code`", created.RichText[0].Text.Content)
	require.NotNil(t, created.DisplayName)
	assert.Equal(t, "Agent", created.DisplayName.Custom.Name)
}

func TestWriteOmitsDisplayNameWhenEmpty(t *testing.T) {
	store := &fakeNotion{}
	srv := store.server(t)
	defer srv.Close()

	svc := NewCommentService(notion.NewClient(srv.URL, "t"), logger.NewNoopLogger())
	outcome := svc.Write(context.Background(), "b1", "hello", "")

	require.True(t, outcome.Success)
	require.Len(t, store.createdComms, 1)
	assert.Nil(t, store.createdComms[0].DisplayName)
}

func TestWriteFailureBecomesOutcome(t *testing.T) {
	store := &fakeNotion{createErr: http.StatusBadRequest}
	srv := store.server(t)
	defer srv.Close()

	svc := NewCommentService(notion.NewClient(srv.URL, "t"), logger.NewNoopLogger())
	outcome := svc.Write(context.Background(), "b1", "hello", "Agent")

	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.CommentId)
	assert.Contains(t, outcome.Error, "status 400")
}
