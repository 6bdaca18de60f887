//go:build wireinject

package main

import (
	"github.com/google/wire"

	"todo-server/internal/domain"
	"todo-server/internal/infrastructure"
	"todo-server/internal/interfaces"
	"todo-server/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
