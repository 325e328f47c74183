//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"rosterd/internal"
	"rosterd/internal/controllers"
	"rosterd/internal/providers"
	"rosterd/internal/services"
	"rosterd/internal/storage"
	"rosterd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		storage.NewZstdCompressor,
		storage.NewDocumentStore,
		storage.NewAuditLog,
		storage.NewNewsArchive,
		storage.NewScheduler,

		services.NewLogRoleMarker,
		services.NewRosterService,
		services.NewDisciplineService,
		services.NewNewsService,
		services.NewResolverService,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
