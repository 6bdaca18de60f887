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
	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/completion"
	"todo-server/internal/infrastructure/logger"
	"todo-server/internal/utils/apperrors"
)

func newOpenAIAdapter(serverURL string) *completion.OpenAIAdapter {
	cfg := &config.Config{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: serverURL + "/v1",
		OpenAIModel:   "test-model",
	}
	return completion.NewOpenAIAdapter(cfg, logger.GetLogger())
}

func sampleHistory() []*conversation.Message {
	return []*conversation.Message{
		{Role: conversation.RoleSystem, Content: "You are a task assistant."},
		{Role: conversation.RoleUser, Content: "add buy milk"},
	}
}

func sampleTools() []chat.ToolDeclaration {
	return []chat.ToolDeclaration{{
		Name:        "add_task",
		Description: "Add a task.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{"title": map[string]any{"type": "string"}},
		},
	}}
}

func TestOpenAICompleteText(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Added it."}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	adapter := newOpenAIAdapter(server.URL)
	decision, err := adapter.Complete(context.Background(), sampleHistory(), sampleTools())
	require.NoError(t, err)
	assert.Equal(t, "Added it.", decision.Content)
	assert.False(t, decision.IsToolCall())

	// The request carries model, mapped roles and the tool declarations.
	assert.Equal(t, "test-model", captured["model"])
	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	tools := captured["tools"].([]any)
	require.Len(t, tools, 1)
	fn := tools[0].(map[string]any)["function"].(map[string]any)
	assert.Equal(t, "add_task", fn["name"])
}

func TestOpenAICompleteToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_abc",
						"type": "function",
						"function": {"name": "add_task", "arguments": "{\"title\":\"Buy milk\"}"}
					}]
				},
				"finish_reason": "tool_calls"
			}]
		}`))
	}))
	defer server.Close()

	adapter := newOpenAIAdapter(server.URL)
	decision, err := adapter.Complete(context.Background(), sampleHistory(), sampleTools())
	require.NoError(t, err)
	require.True(t, decision.IsToolCall())
	require.Len(t, decision.ToolCalls, 1)
	assert.Equal(t, "call_abc", decision.ToolCalls[0].ID)
	assert.Equal(t, "add_task", decision.ToolCalls[0].Name)
	assert.JSONEq(t, `{"title":"Buy milk"}`, decision.ToolCalls[0].Arguments)
}

func TestOpenAIToolCallsWithStopFinishReason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{
				"message": {
					"role": "assistant",
					"content": "",
					"tool_calls": [{
						"id": "call_xyz",
						"type": "function",
						"function": {"name": "list_tasks", "arguments": "{}"}
					}]
				},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	// Tool calls win even when the backend reports finish_reason stop.
	adapter := newOpenAIAdapter(server.URL)
	decision, err := adapter.Complete(context.Background(), sampleHistory(), sampleTools())
	require.NoError(t, err)
	require.True(t, decision.IsToolCall())
	assert.Equal(t, "list_tasks", decision.ToolCalls[0].Name)
}

func TestOpenAIToolResultRoundTrip(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "Done."}, "finish_reason": "stop"}]
		}`))
	}))
	defer server.Close()

	history := append(sampleHistory(),
		&conversation.Message{
			Role: conversation.RoleAssistant,
			ToolCalls: []conversation.ToolCall{
				{ID: "call_abc", Name: "add_task", Arguments: `{"title":"Buy milk"}`},
			},
		},
		&conversation.Message{
			Role: conversation.RoleTool,
			ToolResponses: []conversation.ToolResponse{
				{ToolCallID: "call_abc", Name: "add_task", Content: `{"task_id":1,"status":"created"}`},
			},
		},
	)

	adapter := newOpenAIAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), history, sampleTools())
	require.NoError(t, err)

	messages := captured["messages"].([]any)
	require.Len(t, messages, 4)
	assistant := messages[2].(map[string]any)
	assert.Equal(t, "assistant", assistant["role"])
	require.Len(t, assistant["tool_calls"].([]any), 1)
	tool := messages[3].(map[string]any)
	assert.Equal(t, "tool", tool["role"])
	assert.Equal(t, "call_abc", tool["tool_call_id"])
}

func TestOpenAICompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	adapter := newOpenAIAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), sampleHistory(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCompletion))
}

func TestOpenAICompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	adapter := newOpenAIAdapter(server.URL)
	_, err := adapter.Complete(context.Background(), sampleHistory(), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCompletion))
}
