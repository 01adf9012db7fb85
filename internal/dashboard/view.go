package dashboard

import (
	"slices"
	"time"

	"github.com/nadmax/etltimeline/internal/timeline"
)

type (
	Bar struct {
		Name            string    `json:"name"`
		Start           time.Time `json:"start"`
		End             time.Time `json:"end"`
		DurationMinutes float64   `json:"duration_minutes"`
	}

	View struct {
		Query      string   `json:"query"`
		Title      string   `json:"title"`
		Count      int      `json:"count"`
		Bars       []Bar    `json:"bars"`
		Categories []string `json:"categories"`
	}
)

// BuildView turns filtered records into one bar per record.
func BuildView(records []timeline.Record, query string, v Variant) View {
	bars := make([]Bar, 0, len(records))
	for _, rec := range records {
		bars = append(bars, Bar{
			Name:            rec.Name,
			Start:           rec.StartTimestamp,
			End:             rec.EndTimestamp,
			DurationMinutes: rec.Duration().Minutes(),
		})
	}

	return View{
		Query:      query,
		Title:      v.Title,
		Count:      len(bars),
		Bars:       bars,
		Categories: CategoryOrder(records),
	}
}

// CategoryOrder lists the unique names top to bottom: the last name first
// encountered in load order comes first.
func CategoryOrder(records []timeline.Record) []string {
	seen := make(map[string]struct{}, len(records))
	order := make([]string, 0)
	for _, rec := range records {
		if _, ok := seen[rec.Name]; ok {
			continue
		}
		seen[rec.Name] = struct{}{}
		order = append(order, rec.Name)
	}

	slices.Reverse(order)
	return order
}
