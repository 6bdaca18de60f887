package interfaces

import (
	"github.com/google/wire"

	"todo-server/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
