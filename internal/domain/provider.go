package domain

import (
	"github.com/google/wire"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
	"todo-server/internal/domain/conversation"
	"todo-server/internal/domain/task"
	"todo-server/internal/domain/user"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// Task domain
	task.NewService,

	// Conversation domain
	conversation.NewService,

	// User domain
	user.NewService,

	// Chat orchestration
	chat.NewRegistry,
	ProvideChatConfig,
	chat.NewOrchestrator,
)

func ProvideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		MaxToolRounds:     cfg.MaxToolRounds,
		CompletionTimeout: cfg.CompletionTimeout,
	}
}
