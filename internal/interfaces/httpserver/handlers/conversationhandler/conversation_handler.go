package conversationhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"todo-server/internal/domain/conversation"
	"todo-server/internal/interfaces/httpserver/middlewares"
	"todo-server/internal/interfaces/httpserver/responses"
)

// ConversationHandler exposes transcript listing, retrieval and deletion.
type ConversationHandler struct {
	conversations *conversation.Service
	logger        zerolog.Logger
}

func NewConversationHandler(conversations *conversation.Service, logger zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversations: conversations,
		logger:        logger.With().Str("handler", "conversation").Logger(),
	}
}

// Create starts an empty conversation. Clients can also start one
// implicitly by sending a chat message without a conversation id.
func (h *ConversationHandler) Create(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	conv, err := h.conversations.Create(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, responses.NewConversationResponse(conv, nil))
}

func (h *ConversationHandler) List(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	convs, err := h.conversations.ListByUser(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewConversationListResponse(convs))
}

// Get returns the conversation with its full transcript.
func (h *ConversationHandler) Get(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	conv, err := h.conversations.GetOwned(c.Request.Context(), c.Param("conversation_id"), principal.UserID)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	msgs, err := h.conversations.ListMessages(c.Request.Context(), conv)
	if err != nil {
		responses.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewConversationResponse(conv, msgs))
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}
	if err := h.conversations.Delete(c.Request.Context(), c.Param("conversation_id"), principal.UserID); err != nil {
		responses.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
