package compile

import (
	"strconv"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/settings"
)

var apexTypes = map[catalog.ChartType]string{
	catalog.Line:              "line",
	catalog.Area:              "area",
	catalog.Column:            "bar",
	catalog.Bar:               "bar",
	catalog.NestedColumn:      "bar",
	catalog.DistributedColumn: "bar",
	catalog.Bubble:            "bubble",
	catalog.Candle:            "candlestick",
	catalog.Heatmap:           "heatmap",
	catalog.Radar:             "radar",
	catalog.Pie:               "pie",
	catalog.Donut:             "donut",
	catalog.Radial:            "radialBar",
	catalog.Polar:             "polarArea",
	catalog.Timeline:          "rangeBar",
	catalog.Scatter:           "scatter",
	catalog.Mixed:             "line",
	catalog.Brush:             "line",
}

// ApexType returns the ApexCharts chart type of t, line for unknown types.
func ApexType(t catalog.ChartType) string {
	if s, ok := apexTypes[t]; ok {
		return s
	}
	return "line"
}

// Apex builds ApexCharts options.
func Apex(bag *settings.Bag, data *common.ChartData) Options {
	t := bag.Type
	caps := catalog.Lookup(t)
	n := slots(caps, data)

	o := Options{
		"chart":       chart(bag, caps, data, n),
		"series":      apexSeries(bag, caps, data),
		"colors":      colors(bag, n),
		"fill":        fill(bag, caps, n),
		"dataLabels":  dataLabels(bag),
		"legend":      legend(bag, caps, data),
		"tooltip":     tooltip(bag, caps),
		"stroke":      stroke(bag, caps, n),
		"plotOptions": plotOptions(bag, caps),
		"noData":      Options{"text": "No Data Available"},
	}
	if caps.Markers {
		o["markers"] = Options{"size": bag.Float("chart_marker_size")}
	}

	if caps.Circle {
		o["labels"] = data.Category
	} else {
		x := xaxis(bag)
		if !caps.NoCategoryAxis {
			x["categories"] = data.Category
		}
		o["xaxis"] = x
		o["yaxis"] = yaxis(bag, caps)
	}

	if t == catalog.Radar {
		delete(o, "stroke")
		if len(data.Category) > 0 {
			font := make([]string, len(data.Category))
			for i := range font {
				font[i] = bag.StrOr("chart_font_color", "#000000")
			}
			x := o["xaxis"].(Options)
			x["labels"].(Options)["style"].(Options)["colors"] = font
		}
	}
	if caps.DualYTicks {
		o["brush"] = Options{
			"chart": Options{"brush": Options{"enabled": true}, "selection": Options{"enabled": true}},
			"yaxis": Options{"tickAmount": bag.Int("chart_yaxis_tick_amount_2")},
		}
	}
	return o
}

// chart builds the chart block. Animation is switched off once a series
// exceeds AnimationPointLimit points.
func chart(bag *settings.Bag, caps catalog.Capabilities, data *common.ChartData, n int) Options {
	animate := bag.Bool("chart_animation")
	animations := Options{
		"enabled": animate,
		"easing":  bag.StrOr("chart_animation_easing", catalog.FirstKey(catalog.AnimationEasings)),
		"speed":   bag.Float("chart_animation_speed"),
		"animateGradually": Options{
			"enabled": animate,
			"delay":   bag.Float("chart_animation_delay"),
		},
		"dynamicAnimation": Options{
			"enabled": animate,
			"speed":   bag.Float("chart_animation_speed"),
		},
	}
	if data.MaxPoints() > catalog.AnimationPointLimit {
		animations["enabled"] = false
		animations["dynamicAnimation"].(Options)["enabled"] = false
	}

	c := Options{
		"type":       ApexType(bag.Type),
		"height":     bag.Float("chart_height"),
		"fontFamily": bag.Str("chart_font_family"),
		"foreColor":  bag.StrOr("chart_font_color", "#000000"),
		"background": bag.Str("chart_background"),
		"toolbar":    Options{"show": bag.Bool("chart_toolbar")},
		"animations": animations,
	}
	if bag.Type == catalog.NestedColumn {
		c["stacked"] = true
	}
	if caps.DropShadow {
		c["dropShadow"] = Options{
			"enabled":         bag.Bool("chart_drop_shadow_enabled"),
			"enabledOnSeries": indices(n),
			"top":             bag.Float("chart_drop_shadow_top"),
			"left":            bag.Float("chart_drop_shadow_left"),
			"blur":            bag.Float("chart_drop_shadow_blur"),
			"color":           bag.StrOr("chart_drop_shadow_color", "#000000"),
			"opacity":         bag.Float("chart_drop_shadow_opacity"),
		}
	}
	return c
}

func apexSeries(bag *settings.Bag, caps catalog.Capabilities, data *common.ChartData) interface{} {
	if caps.Circle {
		if len(data.Series) == 0 {
			return []float64{}
		}
		return data.Series[0].Data
	}

	res := make([]Options, 0, len(data.Series))
	for _, s := range data.Series {
		entry := Options{"name": s.Name}
		if s.Type != "" {
			entry["type"] = s.Type
		}
		switch bag.Type {
		case catalog.Candle:
			points := make([]Options, len(s.Points))
			for i, p := range s.Points {
				// close, open, high, low -> open, high, low, close
				points[i] = Options{"x": category(data, i), "y": []float64{p[1], p[2], p[3], p[0]}}
			}
			entry["data"] = points
		case catalog.Bubble:
			points := make([]Options, len(s.Points))
			for i, p := range s.Points {
				points[i] = Options{"x": category(data, i), "y": p[0], "z": p[1]}
			}
			entry["data"] = points
		case catalog.Timeline:
			points := make([]Options, len(s.Points))
			for i, p := range s.Points {
				points[i] = Options{"x": category(data, i), "y": []float64{p[0], p[1]}}
			}
			entry["data"] = points
		default:
			entry["data"] = s.Data
		}
		res = append(res, entry)
	}
	return res
}

func category(data *common.ChartData, i int) string {
	if i < len(data.Category) {
		return data.Category[i]
	}
	return ""
}

func fill(bag *settings.Bag, caps catalog.Capabilities, n int) Options {
	style := bag.StrOr("chart_fill_style_type", "classic")
	f := Options{"opacity": bag.Float("chart_fill_opacity")}
	switch {
	case style == "gradient" && caps.Gradient:
		f["type"] = "gradient"
		f["gradient"] = Options{
			"type":             bag.StrOr("chart_gradient_type", catalog.FirstKey(catalog.GradientTypes)),
			"gradientToColors": gradientColors(bag, n),
			"inverseColors":    bag.Bool("chart_gradient_inversecolor"),
		}
	case style == "pattern" && caps.Pattern:
		f["type"] = "pattern"
	default:
		f["type"] = "solid"
	}
	if f["type"] == "pattern" || caps.Circle {
		f["pattern"] = Options{
			"style":       patterns(bag, n),
			"width":       PatternWidth,
			"height":      PatternHeight,
			"strokeWidth": PatternStrokeWidth,
		}
	}
	return f
}

func dataLabels(bag *settings.Bag) Options {
	d := Options{
		"enabled": bag.Bool("chart_datalabel_show"),
		"offsetY": bag.Float("chart_datalabel_offsety"),
		"style":   Options{"colors": []string{bag.StrOr("chart_datalabel_font_color", "#ffffff")}},
		"background": Options{
			"enabled":     bag.Bool("chart_datalabel_background_show"),
			"borderColor": bag.StrOr("chart_datalabel_background_color", "#000000"),
		},
		"prefix":   bag.Str("chart_datalabel_prefix"),
		"postfix":  bag.Str("chart_datalabel_postfix"),
		"decimals": bag.Int("chart_datalabel_decimals"),
	}
	return d
}

// legend hides circle chart legends while there is nothing to label.
func legend(bag *settings.Bag, caps catalog.Capabilities, data *common.ChartData) Options {
	show := bag.Bool("chart_legend_show")
	if caps.Circle {
		show = show && len(data.Series) > 0 && len(data.Series[0].Data) > 0 && len(data.Category) > 0
	}
	l := Options{
		"show":            show,
		"position":        bag.StrOr("chart_legend_position", "bottom"),
		"horizontalAlign": bag.StrOr("chart_legend_horizontal_align", "center"),
		"fontSize":        strconv.Itoa(bag.IntOr("chart_legend_font_size", 12)) + "px",
	}
	if caps.Circle {
		l["showSeriesValue"] = bag.Bool("chart_legend_show_series_value")
	}
	return l
}

func tooltip(bag *settings.Bag, caps catalog.Capabilities) Options {
	t := Options{
		"enabled": bag.Bool("chart_tooltip"),
		"theme":   bag.StrOr("chart_tooltip_theme", "light"),
	}
	if !caps.Circle {
		t["shared"] = bag.Bool("chart_tooltip_shared")
		t["intersect"] = !bag.Bool("chart_tooltip_shared")
	}
	return t
}

// stroke gates both visibility and width on the stroke switch.
func stroke(bag *settings.Bag, caps catalog.Capabilities, n int) Options {
	show := bag.Bool("chart_stroke_show")
	width := 0.0
	if show {
		width = bag.Float("chart_stroke_width")
	}
	s := Options{"show": show, "width": width}
	switch {
	case caps.Circle:
		s["colors"] = []string{bag.StrOr("chart_stroke_color", "#ffffff")}
	case caps.Markers:
		widths := make([]float64, n)
		dashes := make([]int, n)
		for i := 0; i < n; i++ {
			idx := strconv.Itoa(i)
			if show {
				widths[i] = bag.Float("chart_width_3_" + idx)
			}
			dashes[i] = bag.IntOr("chart_dash_3_"+idx, 0)
		}
		s["width"] = widths
		s["dashArray"] = dashes
		s["curve"] = bag.StrOr("chart_stroke_curve", catalog.FirstKey(catalog.StrokeCurves))
	}
	return s
}

func plotOptions(bag *settings.Bag, caps catalog.Capabilities) Options {
	p := Options{}
	switch bag.Type {
	case catalog.Column, catalog.Bar, catalog.NestedColumn, catalog.DistributedColumn, catalog.Mixed:
		p["bar"] = Options{
			"horizontal":   bag.Bool("chart_plot_horizontal"),
			"columnWidth":  percent(bag.Float("chart_plot_column_width")),
			"borderRadius": bag.Float("chart_plot_border_radius"),
			"distributed":  bag.Type == catalog.DistributedColumn,
			"dataLabels":   Options{"position": bag.StrOr("chart_datalabel_position", "top")},
		}
	case catalog.Timeline:
		p["bar"] = Options{"horizontal": true}
	case catalog.Heatmap:
		p["heatmap"] = Options{"radius": bag.Float("chart_heatmap_radius")}
	case catalog.Pie, catalog.Donut:
		donut := Options{"labels": centerLabel(bag, caps)}
		if bag.Type == catalog.Donut {
			donut["size"] = percent(bag.Float("chart_donut_size"))
		}
		p["pie"] = Options{"donut": donut}
	case catalog.Radial:
		p["radialBar"] = Options{
			"hollow":     Options{"size": percent(bag.Float("chart_radial_hollow"))},
			"startAngle": bag.Float("chart_radial_start_angle"),
			"endAngle":   bag.Float("chart_radial_end_angle"),
			"dataLabels": centerLabel(bag, caps),
		}
	}
	return p
}

func centerLabel(bag *settings.Bag, caps catalog.Capabilities) Options {
	show := caps.CenterLabel && bag.Bool("chart_center_datalabel_show")
	return Options{
		"show":  show,
		"total": Options{"show": show, "label": bag.Str("chart_center_datalabel_text")},
	}
}

func xaxis(bag *settings.Bag) Options {
	show := bag.Bool("chart_xaxis_datalabel_show")
	labels := Options{
		"show":         show,
		"rotateAlways": !bag.Bool("chart_xaxis_datalabel_auto_rotate"),
		"rotate":       bag.Float("chart_xaxis_datalabel_rotate"),
		"style": Options{
			"colors":   bag.StrOr("chart_font_color", "#000000"),
			"fontSize": strconv.Itoa(bag.IntOr("chart_font_size", 12)) + "px",
		},
		"prefix":  bag.Str("chart_xaxis_label_prefix"),
		"postfix": bag.Str("chart_xaxis_label_postfix"),
	}
	x := Options{
		"labels":   labels,
		"position": bag.StrOr("chart_xaxis_datalabel_position", "bottom"),
		"tooltip":  Options{"enabled": bag.Bool("chart_xaxis_tooltip_show")},
	}
	if tick := bag.Int("chart_xaxis_datalabel_tick_amount"); tick > 0 {
		x["tickAmount"] = tick
	}
	if bag.Bool("chart_xaxis_title_enable") {
		x["title"] = Options{"text": bag.Str("chart_xaxis_title")}
	}
	return x
}

func yaxis(bag *settings.Bag, caps catalog.Capabilities) Options {
	y := Options{
		"labels": Options{
			"show": bag.Bool("chart_yaxis_datalabel_show"),
			"style": Options{
				"colors":   bag.StrOr("chart_font_color", "#000000"),
				"fontSize": strconv.Itoa(bag.IntOr("chart_font_size", 12)) + "px",
			},
			"prefix":  bag.Str("chart_yaxis_label_prefix"),
			"postfix": bag.Str("chart_yaxis_label_postfix"),
		},
		"opposite":        bag.Bool("chart_yaxis_opposite"),
		"decimalsInFloat": bag.Int("chart_yaxis_decimals_in_float"),
	}
	tick := "chart_yaxis_tick_amount"
	if caps.DualYTicks {
		tick = "chart_yaxis_tick_amount_1"
	}
	if n := bag.Int(tick); n > 0 {
		y["tickAmount"] = n
	}
	if bag.Bool("chart_yaxis_title_enable") {
		y["title"] = Options{"text": bag.Str("chart_yaxis_title")}
	}
	if bag.Bool("chart_yaxis_enable_min_max") {
		y["min"] = bag.Float("chart_yaxis_min_value")
		y["max"] = bag.Float("chart_yaxis_max_value")
	}
	return y
}
