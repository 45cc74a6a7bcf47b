package models

// ChartType identifies how a series should be rendered.
type ChartType string

// Supported chart renderings.
const (
	ChartLine    ChartType = "LINE"
	ChartBar     ChartType = "BAR"
	ChartArea    ChartType = "AREA"
	ChartScatter ChartType = "SCATTER"
)

// ChartPoint is one (x, y, label) tuple.
type ChartPoint struct {
	X     string  `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// ChartSeries is a named, colored, ordered point sequence consumable by any
// charting layer. Points is never nil; empty input yields an empty slice.
type ChartSeries struct {
	Name   string       `json:"name"`
	Type   ChartType    `json:"type"`
	Color  string       `json:"color"`
	Points []ChartPoint `json:"points"`
}
