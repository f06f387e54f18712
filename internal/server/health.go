package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fieldtrak/fieldtrak/pkg/composables"
	"github.com/fieldtrak/fieldtrak/pkg/httpapi"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (c *HealthController) Key() string {
	return "/healthz"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/healthz", c.Get).Methods(http.MethodGet)
}

// Get pings the pool so the probe fails when the database is unreachable.
func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	pool, err := composables.UsePool(r.Context())
	if err == nil {
		err = pool.Ping(r.Context())
	}
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusServiceUnavailable, "ERR_UNHEALTHY", "database unreachable", nil)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
