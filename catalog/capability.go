package catalog

// Capabilities is the per chart type feature set. Code that used to test a
// literal list of types checks one of these flags instead.
type Capabilities struct {
	Google         bool
	Circle         bool
	CenterLabel    bool
	Negative       bool
	NoCategoryAxis bool
	DualYTicks     bool
	Datatable      bool
	Gradient       bool
	Pattern        bool
	DropShadow     bool
	Markers        bool
	// Tuples marks the Google family that is fed [label, value] pairs.
	Tuples bool
	// Org marks the organisational chart fed [name, parent, value] tuples.
	Org           bool
	MaxSeries     int
	DefaultSeries int
}

const (
	// MaxSeries bounds the per-series fields declared by the schema builder.
	MaxSeries = 30
	// AnimationPointLimit is the series length above which animation is disabled.
	AnimationPointLimit = 1000
	// PlaceholderMin and PlaceholderMax bound the preview values used for empty manual cells.
	PlaceholderMin = 10
	PlaceholderMax = 200
	// MaxDatatableColumns bounds the manual datatable header fields.
	MaxDatatableColumns = 20
	// MaxDatatableRows bounds the manual datatable row fields.
	MaxDatatableRows = 50
)

func apex(c Capabilities) Capabilities {
	c.DropShadow = true
	if c.MaxSeries == 0 {
		c.MaxSeries = MaxSeries
	}
	if c.DefaultSeries == 0 {
		c.DefaultSeries = 3
	}
	return c
}

func google(c Capabilities) Capabilities {
	c.Google = true
	if c.MaxSeries == 0 {
		c.MaxSeries = MaxSeries
	}
	if c.DefaultSeries == 0 {
		c.DefaultSeries = 3
	}
	return c
}

var capabilityTable = map[ChartType]Capabilities{
	Line:              apex(Capabilities{Negative: true, Gradient: true, Pattern: true, Markers: true}),
	Area:              apex(Capabilities{Negative: true, Gradient: true, Pattern: true, Markers: true}),
	Column:            apex(Capabilities{Negative: true, Gradient: true, Pattern: true}),
	Bar:               apex(Capabilities{Negative: true, Gradient: true, Pattern: true}),
	Bubble:            Capabilities{NoCategoryAxis: true, Gradient: true, MaxSeries: MaxSeries, DefaultSeries: 3},
	Candle:            apex(Capabilities{Negative: true, NoCategoryAxis: true}),
	Heatmap:           apex(Capabilities{DefaultSeries: 5}),
	Radar:             apex(Capabilities{Gradient: true, Pattern: true, Markers: true}),
	Pie:               apex(Capabilities{Circle: true, CenterLabel: true, NoCategoryAxis: true, Gradient: true, Pattern: true, DefaultSeries: 5}),
	Donut:             apex(Capabilities{Circle: true, CenterLabel: true, NoCategoryAxis: true, Gradient: true, Pattern: true, DefaultSeries: 5}),
	Radial:            apex(Capabilities{Circle: true, CenterLabel: true, NoCategoryAxis: true, Gradient: true, Pattern: true, DefaultSeries: 4}),
	Polar:             apex(Capabilities{Circle: true, NoCategoryAxis: true, Gradient: true, Pattern: true, DefaultSeries: 5}),
	Timeline:          apex(Capabilities{Gradient: true}),
	NestedColumn:      apex(Capabilities{Negative: true, Gradient: true, Pattern: true}),
	DistributedColumn: apex(Capabilities{Negative: true, Gradient: true, Pattern: true, DefaultSeries: 5}),
	Scatter:           apex(Capabilities{Negative: true, Markers: true}),
	Mixed:             apex(Capabilities{Negative: true, Gradient: true, Pattern: true, Markers: true}),
	Brush:             apex(Capabilities{Negative: true, DualYTicks: true, Markers: true, DefaultSeries: 1}),

	AreaGoogle:   google(Capabilities{Negative: true}),
	BarGoogle:    google(Capabilities{Negative: true}),
	ColumnGoogle: google(Capabilities{Negative: true}),
	LineGoogle:   google(Capabilities{Negative: true}),
	PieGoogle:    google(Capabilities{Circle: true, Tuples: true, DefaultSeries: 5}),
	DonutGoogle:  google(Capabilities{Circle: true, Tuples: true, DefaultSeries: 5}),
	GaugeGoogle:  google(Capabilities{Tuples: true, DefaultSeries: 1}),
	GeoGoogle:    google(Capabilities{Tuples: true, DefaultSeries: 5}),
	OrgGoogle:    google(Capabilities{Org: true, DefaultSeries: 5}),

	DataTableLite: {Datatable: true, MaxSeries: MaxDatatableColumns, DefaultSeries: 3},
}

// Lookup returns the capability set of t. Unknown types get the zero value
// with the common series limits so every consumer can still read them.
func Lookup(t ChartType) Capabilities {
	if c, ok := capabilityTable[t]; ok {
		return c
	}
	return Capabilities{MaxSeries: MaxSeries, DefaultSeries: 1}
}

// Types returns the chart types matching pred, in AllTypes order.
func Types(pred func(Capabilities) bool) []ChartType {
	var res []ChartType
	for _, t := range AllTypes() {
		if pred(capabilityTable[t]) {
			res = append(res, t)
		}
	}
	return res
}
