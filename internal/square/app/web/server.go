package web

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"possync_api/metrics"
	"possync_api/pkg/dbconnect"
	"possync_api/pkg/logger"
)

// NewRouter builds the operational endpoint: liveness of the store and
// Prometheus metrics. It sits outside the sync data path.
func NewRouter(db dbconnect.Database) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "db unreachable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.MetricsHandler())

	return r
}

// Serve runs the ops server. A bind failure is logged, not fatal:
// losing the ops endpoint must not abort a sync run.
func Serve(addr string, db dbconnect.Database, writer io.Writer) {
	_log := logger.NewLogger(writer, "[OpsServer]")
	_log.Log("Ops endpoint listening on %s", addr)
	if err := http.ListenAndServe(addr, NewRouter(db)); err != nil {
		_log.Log("Ops endpoint stopped: %s", err)
	}
}
