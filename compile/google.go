package compile

import (
	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/settings"
)

var googleTypes = map[catalog.ChartType]string{
	catalog.AreaGoogle:   "AreaChart",
	catalog.BarGoogle:    "BarChart",
	catalog.ColumnGoogle: "ColumnChart",
	catalog.LineGoogle:   "LineChart",
	catalog.PieGoogle:    "PieChart",
	catalog.DonutGoogle:  "PieChart",
	catalog.GaugeGoogle:  "Gauge",
	catalog.GeoGoogle:    "GeoChart",
	catalog.OrgGoogle:    "OrgChart",
}

// GoogleType returns the Google Charts visualization class of t.
func GoogleType(t catalog.ChartType) string {
	return googleTypes[t]
}

// Google builds Google Charts options. "columns" declares the data table
// columns matching the googlechartData rows.
func Google(bag *settings.Bag, data *common.ChartData) Options {
	t := bag.Type
	caps := catalog.Lookup(t)
	o := Options{
		"chartType":       GoogleType(t),
		"height":          bag.Float("chart_height"),
		"backgroundColor": bag.StrOr("google_chart_background", "#ffffff"),
		"fontSize":        bag.IntOr("chart_font_size", 12),
		"legend": Options{
			"position":  bag.StrOr("google_chart_legend_position", "bottom"),
			"textStyle": Options{"color": bag.StrOr("chart_font_color", "#000000")},
		},
		"columns": googleColumns(bag, caps, data),
	}
	if bag.Bool("google_chart_title_show") {
		o["title"] = bag.Str("google_chart_title")
	}
	if n := slots(caps, data); n > 0 && !caps.Org {
		o["colors"] = colors(bag, n)
	}

	switch t {
	case catalog.PieGoogle:
		o["is3D"] = bag.Bool("google_chart_pie_3d")
	case catalog.DonutGoogle:
		o["pieHole"] = bag.Float("google_chart_pie_hole")
	case catalog.GaugeGoogle:
		o["min"] = bag.Float("google_gauge_min")
		o["max"] = bag.Float("google_gauge_max")
		o["yellowFrom"] = bag.Float("google_gauge_yellow_from")
		o["yellowTo"] = bag.Float("google_gauge_yellow_to")
		o["redFrom"] = bag.Float("google_gauge_red_from")
		o["redTo"] = bag.Float("google_gauge_red_to")
	case catalog.GeoGoogle:
		o["region"] = bag.StrOr("google_geo_region", "world")
		o["colorAxis"] = Options{"colors": []string{
			bag.StrOr("google_geo_color_from", "#e0f3db"),
			bag.StrOr("google_geo_color_to", "#1b998b"),
		}}
	case catalog.OrgGoogle:
		o["allowHtml"] = true
		o["size"] = bag.StrOr("google_org_size", "medium")
		o["nodeColor"] = bag.StrOr("google_org_node_color", "#edf7ff")
	default:
		o["hAxis"] = Options{"title": bag.Str("google_chart_haxis_title")}
		o["vAxis"] = Options{"title": bag.Str("google_chart_vaxis_title")}
		o["lineWidth"] = bag.Float("google_chart_line_width")
		o["annotations"] = Options{"alwaysOutside": false}
	}
	return o
}

func googleColumns(bag *settings.Bag, caps catalog.Capabilities, data *common.ChartData) []Options {
	switch {
	case caps.Org:
		return []Options{
			{"type": "string", "label": "Name"},
			{"type": "string", "label": "Manager"},
			{"type": "string", "label": "ToolTip"},
		}
	case caps.Tuples:
		label := "Value"
		if len(data.Series) > 0 && data.Series[0].Name != "" {
			label = data.Series[0].Name
		}
		return []Options{{"type": "string", "label": "Label"}, {"type": "number", "label": label}}
	}

	cols := []Options{{"type": "string", "label": "Category"}}
	annotate := bag.Bool("google_chart_annotation_show")
	for _, s := range data.Series {
		cols = append(cols, Options{"type": "number", "label": s.Name})
		if annotate {
			cols = append(cols, Options{"type": "string", "role": "annotation"})
		}
	}
	return cols
}
