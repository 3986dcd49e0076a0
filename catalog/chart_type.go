// Package catalog holds the static lookup tables shared by the schema
// builder, the normalizer and the compiler.
package catalog

import "strings"

// ChartType selects which schema fragments, normalization and compile rules apply.
type ChartType string

const (
	Line              ChartType = "line"
	Area              ChartType = "area"
	Column            ChartType = "column"
	Bar               ChartType = "bar"
	Bubble            ChartType = "bubble"
	Candle            ChartType = "candle"
	Heatmap           ChartType = "heatmap"
	Radar             ChartType = "radar"
	Pie               ChartType = "pie"
	Donut             ChartType = "donut"
	Radial            ChartType = "radial"
	Polar             ChartType = "polar"
	Timeline          ChartType = "timeline"
	NestedColumn      ChartType = "nested_column"
	DistributedColumn ChartType = "distributed_column"
	Scatter           ChartType = "scatter"
	Mixed             ChartType = "mixed"
	Brush             ChartType = "brush"

	AreaGoogle   ChartType = "area_google"
	BarGoogle    ChartType = "bar_google"
	ColumnGoogle ChartType = "column_google"
	LineGoogle   ChartType = "line_google"
	PieGoogle    ChartType = "pie_google"
	DonutGoogle  ChartType = "donut_google"
	GaugeGoogle  ChartType = "gauge_google"
	GeoGoogle    ChartType = "geo_google"
	OrgGoogle    ChartType = "org_google"

	DataTableLite ChartType = "data_table_lite"
)

// ApexTypes lists the types rendered by ApexCharts.
var ApexTypes = []ChartType{
	Line, Area, Column, Bar, Bubble, Candle, Heatmap, Radar, Pie, Donut, Radial,
	Polar, Timeline, NestedColumn, DistributedColumn, Scatter, Mixed, Brush,
}

// GoogleTypes lists the types rendered by Google Charts.
var GoogleTypes = []ChartType{
	AreaGoogle, BarGoogle, ColumnGoogle, LineGoogle, PieGoogle, DonutGoogle,
	GaugeGoogle, GeoGoogle, OrgGoogle,
}

// AllTypes returns every known chart type, ApexCharts first.
func AllTypes() []ChartType {
	all := make([]ChartType, 0, len(ApexTypes)+len(GoogleTypes)+1)
	all = append(all, ApexTypes...)
	all = append(all, GoogleTypes...)
	return append(all, DataTableLite)
}

// ParseChartType normalizes a raw identifier. Unknown identifiers are kept
// as-is so the schema builder can fall back to the common fragments.
func ParseChartType(s string) ChartType {
	return ChartType(strings.ToLower(strings.TrimSpace(s)))
}

// Known reports whether t is in the capability table.
func (t ChartType) Known() bool {
	_, ok := capabilityTable[t]
	return ok
}

func (t ChartType) String() string {
	return string(t)
}

// Key builds the namespaced field key "iq_{type}_{semantic}".
func (t ChartType) Key(semantic string) string {
	return "iq_" + string(t) + "_" + semantic
}
