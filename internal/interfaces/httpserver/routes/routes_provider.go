package routes

import (
	"github.com/google/wire"

	"todo-server/internal/interfaces/httpserver/handlers"
	"todo-server/internal/interfaces/httpserver/routes/api"
	"todo-server/internal/interfaces/httpserver/routes/auth"
)

// RouteProvider provides all HTTP routes with their handlers
var RouteProvider = wire.NewSet(
	handlers.HandlerProvider,
	auth.NewAuthRoute,
	api.NewAPIRoute,
)
