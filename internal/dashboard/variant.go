package dashboard

import "fmt"

const (
	ControlDropdown = "dropdown"
	ControlSearch   = "search"
)

// Variant holds the layout settings of one page configuration. The
// dropdown and search pages differ only in the control and canvas size.
type Variant struct {
	Name       string `json:"name"`
	Control    string `json:"control"`
	Heading    string `json:"heading"`
	Title      string `json:"title"`
	XAxisTitle string `json:"xaxis_title"`
	YAxisTitle string `json:"yaxis_title"`
	TickFormat string `json:"tick_format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

var variants = map[string]Variant{
	ControlDropdown: newVariant(ControlDropdown, 1800, 2000),
	ControlSearch:   newVariant(ControlSearch, 1600, 1200),
}

func newVariant(control string, width, height int) Variant {
	return Variant{
		Name:       control,
		Control:    control,
		Heading:    "Interactive ETL Execution Timeline",
		Title:      "ETL Execution Timeline (Filtered)",
		XAxisTitle: "Time of Day (CST)",
		YAxisTitle: "ETL",
		TickFormat: "%H:%M",
		Width:      width,
		Height:     height,
	}
}

func LookupVariant(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("unknown dashboard variant %q", name)
	}

	return v, nil
}
