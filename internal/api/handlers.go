package api

import (
	"net/http"

	"github.com/nadmax/etltimeline/internal/dashboard"
	"github.com/nadmax/etltimeline/internal/httputil"
	"github.com/nadmax/etltimeline/internal/middleware"
	"github.com/nadmax/etltimeline/internal/timeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type API struct {
	dataset   *timeline.Dataset
	dashboard *dashboard.Dashboard
	mux       *http.ServeMux
	handler   http.Handler
}

type HealthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

func NewAPI(ds *timeline.Dataset, variant dashboard.Variant, logger *zap.Logger) *API {
	api := &API{
		dataset:   ds,
		dashboard: dashboard.NewDashboard(ds, variant, logger),
		mux:       http.NewServeMux(),
	}

	api.setupRoutes()
	api.handler = middleware.RequestLogger(logger)(middleware.MetricsMiddleware(api.mux))
	return api
}

func (a *API) setupRoutes() {
	a.mux.HandleFunc("/api/timeline", getOnly(a.dashboard.GetTimeline))
	a.mux.HandleFunc("/api/names", getOnly(a.dashboard.GetNames))
	a.mux.HandleFunc("/api/layout", getOnly(a.dashboard.GetLayout))
	a.mux.HandleFunc("/health", getOnly(a.handleHealth))
	a.mux.Handle("/metrics", promhttp.Handler())
	a.mux.HandleFunc("/", getOnly(a.handleIndex))
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httputil.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		next(w, r)
	}
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Records: a.dataset.Len(),
	})
}

func (a *API) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.WriteJSONError(w, "Not found", http.StatusNotFound)
		return
	}

	a.dashboard.Index(w, r)
}
