package repository

import (
	"github.com/google/wire"

	"todo-server/internal/infrastructure/database/repository/conversationrepo"
	"todo-server/internal/infrastructure/database/repository/taskrepo"
	"todo-server/internal/infrastructure/database/repository/userrepo"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	taskrepo.NewTaskGormRepository,
	conversationrepo.NewConversationGormRepository,
)
