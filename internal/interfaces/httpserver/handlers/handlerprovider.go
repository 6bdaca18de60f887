package handlers

import (
	"github.com/google/wire"

	"todo-server/internal/interfaces/httpserver/handlers/authhandler"
	"todo-server/internal/interfaces/httpserver/handlers/chathandler"
	"todo-server/internal/interfaces/httpserver/handlers/conversationhandler"
	"todo-server/internal/interfaces/httpserver/handlers/taskhandler"
)

// HandlerProvider provides all HTTP handlers
var HandlerProvider = wire.NewSet(
	authhandler.NewAuthHandler,
	taskhandler.NewTaskHandler,
	chathandler.NewChatHandler,
	conversationhandler.NewConversationHandler,
)
