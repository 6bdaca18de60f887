package chathandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain/chat"
	"todo-server/internal/interfaces/httpserver/middlewares"
	"todo-server/internal/interfaces/httpserver/requests/chatrequests"
	"todo-server/internal/interfaces/httpserver/responses"
)

// ChatHandler runs one assistant turn per request. Completion failures do
// not surface as HTTP errors: the orchestrator persists an assistant
// message describing the problem and the endpoint still returns 200.
type ChatHandler struct {
	orchestrator *chat.Orchestrator
	logger       zerolog.Logger
}

func NewChatHandler(orchestrator *chat.Orchestrator, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		logger:       logger.With().Str("handler", "chat").Logger(),
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req chatrequests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	result, err := h.orchestrator.Turn(c.Request.Context(), principal.UserID, req.ConversationID, req.Message)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.ChatResponse{
		ConversationID: result.Conversation.PublicID,
		MessageID:      result.MessageID,
		Response:       result.Response,
	})
}
