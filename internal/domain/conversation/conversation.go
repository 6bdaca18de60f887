package conversation

import (
	"context"
	"time"
)

// Conversation is an append-only chat transcript owned by one user.
type Conversation struct {
	ID        uint
	PublicID  string
	UserID    uint
	Title     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem, RoleTool:
		return true
	}
	return false
}

// ToolCall is a model-requested tool invocation recorded on an assistant
// message. Arguments holds the raw JSON argument string.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolResponse is the result of executing a tool call, recorded on a
// tool-role message. Content holds the JSON result payload.
type ToolResponse struct {
	ToolCallID string `json:"tool_call_id"`
	Name       string `json:"name"`
	Content    string `json:"content"`
}

// Message is a single transcript entry. Messages are append-only: they are
// never updated or individually deleted.
type Message struct {
	ID             uint
	PublicID       string
	ConversationID uint
	Role           Role
	Content        string
	ToolCalls      []ToolCall
	ToolResponses  []ToolResponse
	CreatedAt      time.Time
}

// Repository defines storage operations for conversations and their
// messages. FindByPublicID returns (nil, nil) when no conversation matches.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	ListByUser(ctx context.Context, userID uint) ([]*Conversation, error)
	Update(ctx context.Context, conv *Conversation) error
	// Delete removes the conversation and all of its messages.
	Delete(ctx context.Context, conv *Conversation) error

	AppendMessages(ctx context.Context, msgs []*Message) error
	// ListMessages returns the conversation's messages in insertion order.
	ListMessages(ctx context.Context, conversationID uint) ([]*Message, error)
}
