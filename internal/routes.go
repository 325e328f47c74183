package internal

import (
	"net/http"
	"rosterd/internal/controllers"
	"rosterd/internal/providers"
	"rosterd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/roster/appoint", http.HandlerFunc(apiController.Appoint))
	routers.Post("/roster/remove", http.HandlerFunc(apiController.Remove))
	routers.Get("/roster/list", http.HandlerFunc(apiController.ListRoster))
	routers.Get("/roster/person", http.HandlerFunc(apiController.GetPerson))
	routers.Post("/discipline/warning", http.HandlerFunc(apiController.Warning))
	routers.Post("/discipline/reprimand", http.HandlerFunc(apiController.Reprimand))
	routers.Post("/news", http.HandlerFunc(apiController.PublishNews))
	routers.Get("/news/recent", http.HandlerFunc(apiController.RecentNews))
	routers.Post("/resolve", http.HandlerFunc(apiController.Resolve))
	routers.Get("/stats", http.HandlerFunc(apiController.Stats))
	return routers
}
