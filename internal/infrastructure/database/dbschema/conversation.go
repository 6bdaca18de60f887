package dbschema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Conversation{})
	database.RegisterSchemaForAutoMigrate(Message{})
}

// Conversation represents the database schema for chat transcripts.
type Conversation struct {
	BaseModel
	PublicID string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	UserID   uint    `gorm:"index:idx_conversation_user;not null"`
	User     User    `gorm:"foreignKey:UserID"`
	Title    *string `gorm:"type:varchar(256)"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// Message represents one transcript entry. Tool payloads are stored as JSON
// columns next to the plain text content.
type Message struct {
	BaseModel
	ConversationID uint              `gorm:"index:idx_message_conversation;not null"`
	Conversation   Conversation      `gorm:"foreignKey:ConversationID"`
	PublicID       string            `gorm:"type:varchar(50);uniqueIndex;not null"`
	Role           string            `gorm:"type:varchar(20);not null"`
	Content        string            `gorm:"type:text;not null"`
	ToolCalls      JSONToolCalls     `gorm:"type:jsonb"`
	ToolResponses  JSONToolResponses `gorm:"type:jsonb"`
}

// JSONToolCalls stores []conversation.ToolCall as a JSON column.
type JSONToolCalls []conversation.ToolCall

func (j JSONToolCalls) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONToolCalls) Scan(value any) error {
	return scanJSON(value, j)
}

// JSONToolResponses stores []conversation.ToolResponse as a JSON column.
type JSONToolResponses []conversation.ToolResponse

func (j JSONToolResponses) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONToolResponses) Scan(value any) error {
	return scanJSON(value, j)
}

func scanJSON(value any, dst any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}

// NewSchemaConversation converts a domain conversation into a schema instance.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	if c == nil {
		return nil
	}
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID: c.PublicID,
		UserID:   c.UserID,
		Title:    c.Title,
	}
}

// EtoD converts a schema conversation back to the domain representation.
func (c *Conversation) EtoD() *conversation.Conversation {
	if c == nil {
		return nil
	}
	return &conversation.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		UserID:    c.UserID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewSchemaMessage converts a domain message into a schema instance.
func NewSchemaMessage(m *conversation.Message) *Message {
	if m == nil {
		return nil
	}
	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		ConversationID: m.ConversationID,
		PublicID:       m.PublicID,
		Role:           string(m.Role),
		Content:        m.Content,
		ToolCalls:      JSONToolCalls(m.ToolCalls),
		ToolResponses:  JSONToolResponses(m.ToolResponses),
	}
}

// EtoD converts a schema message back to the domain representation.
func (m *Message) EtoD() *conversation.Message {
	if m == nil {
		return nil
	}
	return &conversation.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		Role:           conversation.Role(m.Role),
		Content:        m.Content,
		ToolCalls:      []conversation.ToolCall(m.ToolCalls),
		ToolResponses:  []conversation.ToolResponse(m.ToolResponses),
		CreatedAt:      m.CreatedAt,
	}
}
