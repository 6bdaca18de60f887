package api

import (
	"github.com/gin-gonic/gin"

	"todo-server/internal/interfaces/httpserver/handlers/chathandler"
	"todo-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"todo-server/internal/interfaces/httpserver/handlers/taskhandler"
	"todo-server/internal/interfaces/httpserver/middlewares"
)

// APIRoute wires the authenticated, user-scoped endpoints under
// /api/:user_id.
type APIRoute struct {
	taskHandler         *taskhandler.TaskHandler
	chatHandler         *chathandler.ChatHandler
	conversationHandler *conversationhandler.ConversationHandler
}

func NewAPIRoute(
	taskHandler *taskhandler.TaskHandler,
	chatHandler *chathandler.ChatHandler,
	conversationHandler *conversationhandler.ConversationHandler,
) *APIRoute {
	return &APIRoute{
		taskHandler:         taskHandler,
		chatHandler:         chatHandler,
		conversationHandler: conversationHandler,
	}
}

// RegisterRouter registers routes on the authenticated router. The
// :user_id segment must match the token subject; everything else is 403.
func (r *APIRoute) RegisterRouter(protectedRouter gin.IRouter) {
	group := protectedRouter.Group("/api/:user_id", middlewares.PathOwnership())

	tasks := group.Group("/tasks")
	tasks.POST("", r.taskHandler.Create)
	tasks.GET("", r.taskHandler.List)
	tasks.GET("/:task_id", r.taskHandler.Get)
	tasks.PUT("/:task_id", r.taskHandler.Update)
	tasks.PATCH("/:task_id/complete", r.taskHandler.SetCompletion)
	tasks.DELETE("/:task_id", r.taskHandler.Delete)

	group.POST("/chat", r.chatHandler.Chat)

	conversations := group.Group("/conversations")
	conversations.POST("", r.conversationHandler.Create)
	conversations.GET("", r.conversationHandler.List)
	conversations.GET("/:conversation_id", r.conversationHandler.Get)
	conversations.DELETE("/:conversation_id", r.conversationHandler.Delete)
}
