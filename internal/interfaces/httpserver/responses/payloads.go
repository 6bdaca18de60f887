package responses

import (
	"time"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/task"
	"todo-server/internal/utils/functional"
)

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TaskResponse is the public shape of a task.
type TaskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func NewTaskListResponse(tasks []*task.Task) []TaskResponse {
	return functional.Map(tasks, func(t *task.Task) TaskResponse {
		return NewTaskResponse(t)
	})
}

// ChatResponse carries the assistant's reply for one chat turn.
type ChatResponse struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	Response       string `json:"response"`
}

// ConversationResponse is the public shape of a conversation.
type ConversationResponse struct {
	ID        string            `json:"id"`
	Title     *string           `json:"title,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Messages  []MessageResponse `json:"messages,omitempty"`
}

// MessageResponse is the public shape of a transcript message.
type MessageResponse struct {
	ID            string                      `json:"id"`
	Role          string                      `json:"role"`
	Content       string                      `json:"content"`
	ToolCalls     []conversation.ToolCall     `json:"tool_calls,omitempty"`
	ToolResponses []conversation.ToolResponse `json:"tool_responses,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

func NewConversationResponse(conv *conversation.Conversation, msgs []*conversation.Message) ConversationResponse {
	return ConversationResponse{
		ID:        conv.PublicID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
		Messages: functional.Map(msgs, func(m *conversation.Message) MessageResponse {
			return MessageResponse{
				ID:            m.PublicID,
				Role:          string(m.Role),
				Content:       m.Content,
				ToolCalls:     m.ToolCalls,
				ToolResponses: m.ToolResponses,
				CreatedAt:     m.CreatedAt,
			}
		}),
	}
}

func NewConversationListResponse(convs []*conversation.Conversation) []ConversationResponse {
	return functional.Map(convs, func(c *conversation.Conversation) ConversationResponse {
		return NewConversationResponse(c, nil)
	})
}
