package schema

import (
	"strconv"

	"github.com/bingLAN/chart_driver/catalog"
)

var googleLegendPositions = catalog.Choices{
	{Key: "bottom", Label: "Bottom"},
	{Key: "top", Label: "Top"},
	{Key: "left", Label: "Left"},
	{Key: "right", Label: "Right"},
	{Key: "in", Label: "Inside"},
	{Key: "none", Label: "None"},
}

var orgSizes = catalog.Choices{
	{Key: "medium", Label: "Medium"},
	{Key: "small", Label: "Small"},
	{Key: "large", Label: "Large"},
}

// CardFields declares the card wrapper shown around every widget.
func CardFields(t catalog.ChartType) []Field {
	show := Eq{t.Key("chart_card_show"), On}
	return []Field{
		toggle(t.Key("chart_card_show"), "Card", true),
		when(toggle(t.Key("chart_is_card_heading_show"), "Heading", true), show),
		when(text(t.Key("chart_heading"), "Heading Text", "My Example Heading"),
			And{show, Eq{t.Key("chart_is_card_heading_show"), On}}),
		when(toggle(t.Key("chart_is_card_desc_show"), "Description", true), show),
		when(textarea(t.Key("chart_content"), "Description Text", "Default description"),
			And{show, Eq{t.Key("chart_is_card_desc_show"), On}}),
	}
}

// StyleFields declares size, font and chart-level style settings.
func StyleFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	fields := []Field{
		number(t.Key("chart_height"), "Height", 350, 10, 2000),
		color(t.Key("chart_font_color"), "Font Color", "#000000"),
		number(t.Key("chart_font_size"), "Font Size", 12, 1, 100),
	}
	if caps.Google {
		return fields
	}
	fields = append(fields,
		text(t.Key("chart_font_family"), "Font Family", "Poppins"),
		choice(t.Key("chart_font_weight"), "Font Weight", catalog.FontWeights),
		color(t.Key("chart_background"), "Background", ""),
		toggle(t.Key("chart_toolbar"), "Toolbar", false),
	)
	if caps.DropShadow {
		on := Eq{t.Key("chart_drop_shadow_enabled"), On}
		fields = append(fields,
			toggle(t.Key("chart_drop_shadow_enabled"), "Drop Shadow", false),
			when(color(t.Key("chart_drop_shadow_color"), "Shadow Color", "#000000"), on),
			when(number(t.Key("chart_drop_shadow_top"), "Shadow Top", 3, -50, 50), on),
			when(number(t.Key("chart_drop_shadow_left"), "Shadow Left", 3, -50, 50), on),
			when(number(t.Key("chart_drop_shadow_blur"), "Shadow Blur", 3, 0, 50), on),
			when(number(t.Key("chart_drop_shadow_opacity"), "Shadow Opacity", 0.35, 0, 1), on),
		)
	}
	return append(fields, PlotFields(t, caps)...)
}

func columnFamily(t catalog.ChartType) bool {
	switch t {
	case catalog.Column, catalog.Bar, catalog.DistributedColumn, catalog.NestedColumn, catalog.Mixed:
		return true
	}
	return false
}

// PlotFields declares the type specific plot options.
func PlotFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	switch {
	case columnFamily(t):
		return []Field{
			toggle(t.Key("chart_plot_horizontal"), "Horizontal", t == catalog.Bar),
			number(t.Key("chart_plot_column_width"), "Column Width (%)", 70, 1, 100),
			number(t.Key("chart_plot_border_radius"), "Border Radius", 0, 0, 50),
		}
	case t == catalog.Donut:
		return []Field{number(t.Key("chart_donut_size"), "Donut Size (%)", 65, 10, 95)}
	case t == catalog.Radial:
		return []Field{
			number(t.Key("chart_radial_hollow"), "Hollow Size (%)", 40, 10, 90),
			number(t.Key("chart_radial_start_angle"), "Start Angle", 0, -360, 360),
			number(t.Key("chart_radial_end_angle"), "End Angle", 360, -360, 360),
		}
	case t == catalog.Heatmap:
		return []Field{number(t.Key("chart_heatmap_radius"), "Cell Radius", 2, 0, 50)}
	}
	if caps.Markers {
		return []Field{number(t.Key("chart_marker_size"), "Marker Size", 0, 0, 30)}
	}
	return nil
}

// DataLabelFields declares the on-chart value labels.
func DataLabelFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	on := Eq{t.Key("chart_datalabel_show"), On}
	fields := []Field{
		toggle(t.Key("chart_datalabel_show"), "Data Labels", caps.Circle),
		when(color(t.Key("chart_datalabel_font_color"), "Label Color", "#ffffff"), on),
		when(toggle(t.Key("chart_datalabel_background_show"), "Label Background", false), on),
		when(color(t.Key("chart_datalabel_background_color"), "Label Background Color", "#000000"),
			And{on, Eq{t.Key("chart_datalabel_background_show"), On}}),
		when(number(t.Key("chart_datalabel_offsety"), "Offset Y", 0, -100, 100), on),
		when(text(t.Key("chart_datalabel_prefix"), "Prefix", ""), on),
		when(text(t.Key("chart_datalabel_postfix"), "Postfix", ""), on),
		when(number(t.Key("chart_datalabel_decimals"), "Decimals", 0, 0, 6), on),
	}
	if columnFamily(t) {
		fields = append(fields, when(choice(t.Key("chart_datalabel_position"), "Position", catalog.DataLabelPositions), on))
	}
	if caps.CenterLabel {
		center := Eq{t.Key("chart_center_datalabel_show"), On}
		fields = append(fields,
			toggle(t.Key("chart_center_datalabel_show"), "Center Label", false),
			when(text(t.Key("chart_center_datalabel_text"), "Center Label Text", "Total"), center),
		)
	}
	return fields
}

// LegendFields declares legend visibility and placement.
func LegendFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	on := Eq{t.Key("chart_legend_show"), On}
	fields := []Field{
		toggle(t.Key("chart_legend_show"), "Legend", true),
		when(choice(t.Key("chart_legend_position"), "Position", catalog.LegendPositions), on),
		when(choice(t.Key("chart_legend_horizontal_align"), "Horizontal Align", catalog.LegendAlign),
			And{on, In{t.Key("chart_legend_position"), []any{"top", "bottom"}}}),
		when(number(t.Key("chart_legend_font_size"), "Font Size", 12, 1, 50), on),
	}
	if caps.Circle {
		fields = append(fields, when(toggle(t.Key("chart_legend_show_series_value"), "Show Values", false), on))
	}
	return fields
}

// TooltipFields declares hover tooltip settings.
func TooltipFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	on := Eq{t.Key("chart_tooltip"), On}
	fields := []Field{
		toggle(t.Key("chart_tooltip"), "Tooltip", true),
		when(choice(t.Key("chart_tooltip_theme"), "Theme", catalog.TooltipThemes), on),
	}
	if !caps.Circle {
		fields = append(fields, when(toggle(t.Key("chart_tooltip_shared"), "Shared", true), on))
	}
	return fields
}

// XAxisFields declares the category axis settings.
func XAxisFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	on := Eq{t.Key("chart_xaxis_datalabel_show"), On}
	return []Field{
		toggle(t.Key("chart_xaxis_datalabel_show"), "X Labels", true),
		when(choice(t.Key("chart_xaxis_datalabel_position"), "Position", catalog.XaxisPositions), on),
		when(toggle(t.Key("chart_xaxis_datalabel_auto_rotate"), "Auto Rotate", true), on),
		when(number(t.Key("chart_xaxis_datalabel_rotate"), "Rotate", -45, -180, 180),
			And{on, Eq{t.Key("chart_xaxis_datalabel_auto_rotate"), Off}}),
		when(number(t.Key("chart_xaxis_datalabel_tick_amount"), "Tick Amount", 6, 0, 50), on),
		when(text(t.Key("chart_xaxis_label_prefix"), "Label Prefix", ""), on),
		when(text(t.Key("chart_xaxis_label_postfix"), "Label Postfix", ""), on),
		toggle(t.Key("chart_xaxis_title_enable"), "X Title", false),
		when(text(t.Key("chart_xaxis_title"), "X Title Text", ""), Eq{t.Key("chart_xaxis_title_enable"), On}),
		toggle(t.Key("chart_xaxis_tooltip_show"), "X Tooltip", false),
	}
}

// YAxisFields declares the value axis settings. Types plotting negative
// values may lower the minimum below zero; brush has one tick control per
// chart of the pair.
func YAxisFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	on := Eq{t.Key("chart_yaxis_datalabel_show"), On}
	minFloor := 0.0
	if caps.Negative {
		minFloor = -1e12
	}
	minMax := Eq{t.Key("chart_yaxis_enable_min_max"), On}
	fields := []Field{
		toggle(t.Key("chart_yaxis_datalabel_show"), "Y Labels", true),
		when(text(t.Key("chart_yaxis_label_prefix"), "Label Prefix", ""), on),
		when(text(t.Key("chart_yaxis_label_postfix"), "Label Postfix", ""), on),
		when(number(t.Key("chart_yaxis_decimals_in_float"), "Decimals", 0, 0, 6), on),
		toggle(t.Key("chart_yaxis_title_enable"), "Y Title", false),
		when(text(t.Key("chart_yaxis_title"), "Y Title Text", ""), Eq{t.Key("chart_yaxis_title_enable"), On}),
		toggle(t.Key("chart_yaxis_opposite"), "Opposite", false),
		toggle(t.Key("chart_yaxis_enable_min_max"), "Min/Max", false),
		when(number(t.Key("chart_yaxis_min_value"), "Min", 0, minFloor, 1e12), minMax),
		when(number(t.Key("chart_yaxis_max_value"), "Max", 250, minFloor, 1e12), minMax),
	}
	if caps.DualYTicks {
		return append(fields,
			number(t.Key("chart_yaxis_tick_amount_1"), "Tick Amount (Main)", 6, 0, 50),
			number(t.Key("chart_yaxis_tick_amount_2"), "Tick Amount (Brush)", 2, 0, 50),
		)
	}
	return append(fields, number(t.Key("chart_yaxis_tick_amount"), "Tick Amount", 6, 0, 50))
}

// StrokeFields declares line/border settings.
func StrokeFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	on := Eq{t.Key("chart_stroke_show"), On}
	def := 2.0
	if caps.Circle {
		def = 1
	}
	fields := []Field{
		toggle(t.Key("chart_stroke_show"), "Stroke", true),
		when(number(t.Key("chart_stroke_width"), "Stroke Width", def, 0, 20), on),
	}
	if caps.Circle {
		return append(fields, when(color(t.Key("chart_stroke_color"), "Stroke Color", "#ffffff"), on))
	}
	if !caps.Markers {
		return fields
	}
	fields = append(fields, when(choice(t.Key("chart_stroke_curve"), "Curve", catalog.StrokeCurves), on))
	for i := 0; i < caps.MaxSeries; i++ {
		n := strconv.Itoa(i)
		visible := And{on, seriesAtLeast(t, i+1)}
		fields = append(fields,
			when(number(t.Key("chart_width_3_"+n), "Width", def, 0, 20), visible),
			when(choice(t.Key("chart_dash_3_"+n), "Dash", catalog.DashStyles), visible),
		)
	}
	return fields
}

// FillFields declares the fill style and its per-series colors.
func FillFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	types := catalog.Choices{catalog.FillTypes[0]}
	if caps.Gradient {
		types = append(types, catalog.FillTypes[1])
	}
	if caps.Pattern {
		types = append(types, catalog.FillTypes[2])
	}
	gradient := Eq{t.Key("chart_fill_style_type"), "gradient"}
	fields := []Field{
		choice(t.Key("chart_fill_style_type"), "Fill Style", types),
		number(t.Key("chart_fill_opacity"), "Fill Opacity", 1, 0, 1),
	}
	if caps.Gradient {
		fields = append(fields,
			when(choice(t.Key("chart_gradient_type"), "Gradient Type", catalog.GradientTypes), gradient),
			when(toggle(t.Key("chart_gradient_inversecolor"), "Inverse Colors", false), gradient),
		)
	}
	return append(fields, SeriesColorFields(t, caps)...)
}

// SeriesColorFields declares one color (plus gradient-to and pattern when
// supported) per series index.
func SeriesColorFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	var fields []Field
	for i := 0; i < caps.MaxSeries; i++ {
		n := strconv.Itoa(i)
		visible := seriesAtLeast(t, i+1)
		fields = append(fields, when(color(t.Key("chart_gradient_1_"+n), "Color", catalog.ColorAt(i)), visible))
		if caps.Gradient {
			fields = append(fields, when(color(t.Key("chart_gradient_2_"+n), "Gradient To", catalog.GradientAt(i)),
				And{visible, Eq{t.Key("chart_fill_style_type"), "gradient"}}))
		}
		if caps.Pattern {
			p := Field{
				Key:     t.Key("chart_bg_pattern_" + n),
				Kind:    KindSelect,
				Label:   "Pattern",
				Default: catalog.PatternStyles[i%len(catalog.PatternStyles)].Key,
				Choices: catalog.PatternStyles,
			}
			fields = append(fields, when(p, And{visible, Eq{t.Key("chart_fill_style_type"), "pattern"}}))
		}
	}
	return fields
}

// AnimationFields declares the entry animation.
func AnimationFields(t catalog.ChartType) []Field {
	on := Eq{t.Key("chart_animation"), On}
	return []Field{
		toggle(t.Key("chart_animation"), "Animation", true),
		when(number(t.Key("chart_animation_speed"), "Speed", 800, 0, 10000), on),
		when(number(t.Key("chart_animation_delay"), "Delay", 150, 0, 10000), on),
		when(choice(t.Key("chart_animation_easing"), "Easing", catalog.AnimationEasings), on),
	}
}

// GoogleFields declares the Google chart options.
func GoogleFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	titleOn := Eq{t.Key("google_chart_title_show"), On}
	fields := []Field{
		toggle(t.Key("google_chart_title_show"), "Chart Title", false),
		when(text(t.Key("google_chart_title"), "Chart Title Text", ""), titleOn),
		color(t.Key("google_chart_background"), "Background", "#ffffff"),
		choice(t.Key("google_chart_legend_position"), "Legend Position", googleLegendPositions),
		text(t.Key("chart_yaxis_label_prefix"), "Value Prefix", ""),
		text(t.Key("chart_yaxis_label_postfix"), "Value Postfix", ""),
	}
	switch t {
	case catalog.PieGoogle:
		return append(fields, toggle(t.Key("google_chart_pie_3d"), "3D", false))
	case catalog.DonutGoogle:
		return append(fields, number(t.Key("google_chart_pie_hole"), "Hole", 0.4, 0, 0.9))
	case catalog.GaugeGoogle:
		return append(fields,
			number(t.Key("google_gauge_min"), "Min", 0, -1e12, 1e12),
			number(t.Key("google_gauge_max"), "Max", 100, -1e12, 1e12),
			number(t.Key("google_gauge_yellow_from"), "Yellow From", 75, -1e12, 1e12),
			number(t.Key("google_gauge_yellow_to"), "Yellow To", 90, -1e12, 1e12),
			number(t.Key("google_gauge_red_from"), "Red From", 90, -1e12, 1e12),
			number(t.Key("google_gauge_red_to"), "Red To", 100, -1e12, 1e12),
		)
	case catalog.GeoGoogle:
		return append(fields,
			text(t.Key("google_geo_region"), "Region", "world"),
			color(t.Key("google_geo_color_from"), "Color From", "#e0f3db"),
			color(t.Key("google_geo_color_to"), "Color To", "#1b998b"),
		)
	case catalog.OrgGoogle:
		return append(fields,
			color(t.Key("google_org_node_color"), "Node Color", "#edf7ff"),
			choice(t.Key("google_org_size"), "Size", orgSizes),
		)
	}
	// row based charts: bar, column, line, area
	return append(fields,
		toggle(t.Key("google_chart_annotation_show"), "Annotations", false),
		text(t.Key("google_chart_haxis_title"), "Horizontal Title", ""),
		text(t.Key("google_chart_vaxis_title"), "Vertical Title", ""),
		number(t.Key("google_chart_line_width"), "Line Width", 2, 0, 20),
	)
}
