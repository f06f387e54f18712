package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/infrastructure/persistence"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/presentation/controllers"
	"github.com/fieldtrak/fieldtrak/modules/takeoff/services"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
	"github.com/fieldtrak/fieldtrak/pkg/eventbus"
	"github.com/fieldtrak/fieldtrak/pkg/httpapi"
	"github.com/fieldtrak/fieldtrak/pkg/metrics"
	"github.com/fieldtrak/fieldtrak/pkg/middleware"
	"github.com/fieldtrak/fieldtrak/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Pool          *pgxpool.Pool
}

// Default wires repositories, services and controllers into a ready HTTP
// server.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	conf := options.Configuration

	drawings := persistence.NewDrawingRepository()
	areas := persistence.NewAreaRepository()
	systems := persistence.NewSystemRepository()
	components := persistence.NewComponentRepository()

	publisher := eventbus.NewEventPublisher(options.Logger)
	parser := services.NewParseService(conf.Import)
	previews := services.NewPreviewService(parser, components, areas, systems, conf.Import)
	imports := services.NewImportService(drawings, areas, systems, components, publisher, conf.Import)

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.WithPool(options.Pool),
	}

	serverControllers := []server.Controller{
		controllers.NewImportController(previews, imports, conf.Import),
		NewHealthController(),
	}
	if conf.Prometheus.Enabled {
		serverControllers = append(serverControllers, metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	return server.NewHTTPServer(
		serverControllers,
		middlewares,
		notFound(),
		methodNotAllowed(),
	), nil
}

func notFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "ERR_NOT_FOUND", "resource not found", nil)
	})
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "ERR_METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
}
