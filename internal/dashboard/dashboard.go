// Package dashboard implements the timeline view-model and the web page that
// renders it. Every change of the search control is one request that
// recomputes the filtered view.
package dashboard

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/nadmax/etltimeline/internal/httputil"
	"github.com/nadmax/etltimeline/internal/metrics"
	"github.com/nadmax/etltimeline/internal/timeline"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

type Dashboard struct {
	dataset *timeline.Dataset
	variant Variant
	logger  *zap.Logger
}

type pageData struct {
	Variant Variant
	Names   []string
}

func NewDashboard(ds *timeline.Dataset, variant Variant, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		dataset: ds,
		variant: variant,
		logger:  logger,
	}
}

func (d *Dashboard) View(query string) View {
	records := d.dataset.Filter(query)
	metrics.RecordFilter(query != "", len(records))

	return BuildView(records, query, d.variant)
}

func (d *Dashboard) GetTimeline(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	httputil.WriteJSON(w, http.StatusOK, d.View(query))
}

func (d *Dashboard) GetNames(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, d.dataset.DistinctNames())
}

func (d *Dashboard) GetLayout(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, d.variant)
}

func (d *Dashboard) Index(w http.ResponseWriter, _ *http.Request) {
	data := pageData{Variant: d.variant}
	if d.variant.Control == ControlDropdown {
		data.Names = d.dataset.DistinctNames()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		d.logger.Error("failed to render dashboard page", zap.Error(err))
	}
}
