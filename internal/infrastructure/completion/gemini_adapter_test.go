package completion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-server/internal/config"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/completion"
	"todo-server/internal/infrastructure/logger"
	"todo-server/internal/utils/apperrors"
)

func newGeminiAdapter(serverURL string) *completion.GeminiAdapter {
	cfg := &config.Config{
		GeminiAPIKey:  "test-key",
		GeminiBaseURL: serverURL,
		GeminiModel:   "test-model",
	}
	return completion.NewGeminiAdapter(cfg, logger.GetLogger())
}

func TestGeminiCompleteText(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Added it."}]}, "finishReason": "STOP"}]
		}`))
	}))
	defer server.Close()

	adapter := newGeminiAdapter(server.URL)
	decision, err := adapter.Complete(context.Background(), sampleHistory(), sampleTools())
	require.NoError(t, err)
	assert.Equal(t, "Added it.", decision.Content)
	assert.False(t, decision.IsToolCall())

	// The system message becomes system_instruction, not a content entry.
	instruction := captured["system_instruction"].(map[string]any)
	parts := instruction["parts"].([]any)
	require.Len(t, parts, 1)
	assert.Equal(t, "You are a task assistant.", parts[0].(map[string]any)["text"])
	contents := captured["contents"].([]any)
	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].(map[string]any)["role"])
	tools := captured["tools"].([]any)
	require.Len(t, tools, 1)
}

func TestGeminiCompleteFunctionCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {
					"role": "model",
					"parts": [{"functionCall": {"name": "add_task", "args": {"title": "Buy milk"}}}]
				},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	adapter := newGeminiAdapter(server.URL)
	decision, err := adapter.Complete(context.Background(), sampleHistory(), sampleTools())
	require.NoError(t, err)
	require.True(t, decision.IsToolCall())
	require.Len(t, decision.ToolCalls, 1)
	assert.Equal(t, "call_add_task_0", decision.ToolCalls[0].ID)
	assert.Equal(t, "add_task", decision.ToolCalls[0].Name)
	assert.JSONEq(t, `{"title":"Buy milk"}`, decision.ToolCalls[0].Arguments)
}

func TestGeminiHistoryRoleMapping(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Done."}]}, "finishReason": "STOP"}]
		}`))
	}))
	defer server.Close()

	history := append(sampleHistory(),
		&conversation.Message{
			Role: conversation.RoleAssistant,
			ToolCalls: []conversation.ToolCall{
				{ID: "call_add_task_0", Name: "add_task", Arguments: `{"title":"Buy milk"}`},
			},
		},
		&conversation.Message{
			Role: conversation.RoleTool,
			ToolResponses: []conversation.ToolResponse{
				// Array payload, must be wrapped under a result key.
				{ToolCallID: "call_list_tasks_0", Name: "list_tasks", Content: `[{"id":1,"title":"Buy milk"}]`},
			},
		},
	)

	adapter := newGeminiAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), history, nil)
	require.NoError(t, err)

	contents := captured["contents"].([]any)
	require.Len(t, contents, 3)

	assistant := contents[1].(map[string]any)
	assert.Equal(t, "model", assistant["role"])
	call := assistant["parts"].([]any)[0].(map[string]any)["functionCall"].(map[string]any)
	assert.Equal(t, "add_task", call["name"])

	tool := contents[2].(map[string]any)
	assert.Equal(t, "function", tool["role"])
	response := tool["parts"].([]any)[0].(map[string]any)["functionResponse"].(map[string]any)
	assert.Equal(t, "list_tasks", response["name"])
	payload := response["response"].(map[string]any)
	_, wrapped := payload["result"]
	assert.True(t, wrapped)
}

func TestGeminiCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid"}}`))
	}))
	defer server.Close()

	adapter := newGeminiAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), sampleHistory(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCompletion))
	assert.Equal(t, "API key not valid", apperrors.MessageOf(err))
}

func TestGeminiCompleteNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	adapter := newGeminiAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), sampleHistory(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCompletion))
}
