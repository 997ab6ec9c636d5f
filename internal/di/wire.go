//go:build wireinject
// +build wireinject

package di

import (
	"astroengine/pkg/config"
	"astroengine/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvidePublisher,
		ProvideEphemeris,

		// Use cases
		ProvideBirthChartUseCase,
		ProvideTransitUseCase,
		ProvideProgressionUseCase,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
