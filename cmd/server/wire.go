//go:build wireinject

package main

import (
	"freightdesk/services/support-api/internal/domain"
	"freightdesk/services/support-api/internal/infrastructure"
	"freightdesk/services/support-api/internal/interfaces"
	"freightdesk/services/support-api/internal/interfaces/httpserver/handlers"
	"freightdesk/services/support-api/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		handlers.HandlerProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
