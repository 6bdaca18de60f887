package chatrequests

// ChatRequest sends one user message, optionally continuing an existing
// conversation.
type ChatRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}
