package schema

import (
	"fmt"
	"strconv"

	"github.com/bingLAN/chart_driver/catalog"
)

var sampleCategories = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var sampleValues = []int{25, 58, 36, 80, 45, 61, 17, 92, 33, 70, 54, 28}

var sampleRegions = []string{"Germany", "United States", "Brazil", "Canada", "France", "India", "Japan"}

var sampleOrg = [][2]string{
	{"CEO", ""}, {"CTO", "CEO"}, {"CFO", "CEO"}, {"Developer", "CTO"}, {"Accountant", "CFO"},
	{"Designer", "CTO"}, {"Support", "CEO"},
}

func manual(t catalog.ChartType) Condition {
	return Eq{t.Key("chart_data_option"), catalog.DataManual}
}

func dynamic(t catalog.ChartType) Condition {
	return Eq{t.Key("chart_data_option"), catalog.DataDynamic}
}

func dynamicIs(t catalog.ChartType, opts ...string) Condition {
	vals := make([]any, len(opts))
	for i, o := range opts {
		vals[i] = o
	}
	return And{dynamic(t), In{t.Key("chart_dynamic_data_option"), vals}}
}

// seriesAtLeast holds while the configured series count reaches n. Counts
// above the maximum are clamped on read, so no upper bound applies.
func seriesAtLeast(t catalog.ChartType, n int) Condition {
	return AtLeast{t.Key("chart_data_series_count"), float64(n)}
}

// PointSemantics returns the per-row value field names of series i. The first
// entry is the value plotted on the shared axis.
func PointSemantics(t catalog.ChartType, i int) []string {
	n := strconv.Itoa(i)
	switch t {
	case catalog.Candle:
		return []string{"chart_close_3_" + n, "chart_open_3_" + n, "chart_high_3_" + n, "chart_low_3_" + n}
	case catalog.Bubble:
		return []string{"chart_value_3_" + n, "chart_bubble_3_" + n}
	case catalog.Timeline:
		return []string{"chart_from_3_" + n, "chart_to_3_" + n}
	}
	return []string{"chart_value_3_" + n}
}

// DataOptionFields declares the data source selection shared by every type.
func DataOptionFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	series := number(t.Key("chart_data_series_count"), "Series Count",
		float64(caps.DefaultSeries), 1, float64(caps.MaxSeries))
	if caps.Circle || caps.Tuples || caps.Org {
		series.Label = "Data Elements"
	}

	fields := source(
		choice(t.Key("chart_data_option"), "Data Source", catalog.DataOptions),
		when(choice(t.Key("chart_dynamic_data_option"), "Dynamic Source", catalog.DynamicOptions), dynamic(t)),
		when(url(t.Key("chart_csv_url"), "CSV URL"), dynamicIs(t, catalog.DynamicCSV, catalog.DynamicRemoteCSV)),
		when(toggle(t.Key("chart_csv_column_wise_enable"), "Column Wise", false),
			dynamicIs(t, catalog.DynamicCSV, catalog.DynamicRemoteCSV, catalog.DynamicSheet)),
		when(url(t.Key("chart_sheet_url"), "Spreadsheet URL"), dynamicIs(t, catalog.DynamicSheet)),
		when(text(t.Key("chart_sheet_name"), "Sheet Name", ""), dynamicIs(t, catalog.DynamicSheet)),
		when(url(t.Key("chart_api_url"), "API URL"), dynamicIs(t, catalog.DynamicAPI)),
		when(text(t.Key("chart_import_from_database"), "Connection", ""), dynamicIs(t, catalog.DynamicDatabase)),
		when(Field{Key: t.Key("chart_sql_query"), Kind: KindTextarea, Label: "SQL Query", Default: ""},
			dynamicIs(t, catalog.DynamicDatabase)),
		when(text(t.Key("chart_import_from_table"), "Table", ""), dynamicIs(t, catalog.DynamicSQLBuilder)),
		when(text(t.Key("chart_sql_builder_x_columns"), "X Columns", ""), Ne{t.Key("chart_data_option"), catalog.DataManual}),
		when(text(t.Key("chart_sql_builder_y_columns"), "Y Columns", ""), Ne{t.Key("chart_data_option"), catalog.DataManual}),
		when(url(t.Key("chart_firebase_url"), "Firebase URL"), Eq{t.Key("chart_data_option"), catalog.DataFirebase}),
		when(text(t.Key("chart_forminator_form"), "Form", ""), Eq{t.Key("chart_data_option"), catalog.DataForminator}),
	)
	return append([]Field{fields[0], series}, append(fields[1:],
		when(number(t.Key("chart_interval_data_refresh"), "Refresh Interval (seconds)", 0, 0, 86400),
			Ne{t.Key("chart_data_option"), catalog.DataManual}),
	)...)
}

// ManualDataFields declares the repeaters used when data is typed in.
func ManualDataFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	switch {
	case caps.Org:
		return whenAll([]Field{orgRepeater(t, caps)}, manual(t))
	case caps.Circle || caps.Tuples:
		return whenAll([]Field{labelValueRepeater(t, caps)}, manual(t))
	}

	fields := []Field{categoryRepeater(t)}
	for i := 0; i < caps.MaxSeries; i++ {
		visible := And{manual(t), seriesAtLeast(t, i+1)}
		n := strconv.Itoa(i)
		fields = append(fields,
			when(text(t.Key("chart_title_3_"+n), "Element Title", fmt.Sprintf("Element %d", i+1)), visible),
			when(seriesRepeater(t, i), visible),
		)
		if t == catalog.Mixed {
			fields = append(fields, when(choice(t.Key("chart_type_3_"+n), "Series Type", catalog.MixedSeriesTypes), visible))
		}
	}
	return fields
}

func categoryRepeater(t catalog.ChartType) Field {
	rows := make([]map[string]any, 0, 6)
	for _, c := range sampleCategories[:6] {
		rows = append(rows, map[string]any{t.Key("chart_category"): c})
	}
	return when(repeater(t.Key("category_list"), "Categories", rows,
		text(t.Key("chart_category"), "Category", "")), manual(t))
}

func seriesRepeater(t catalog.ChartType, i int) Field {
	semantics := PointSemantics(t, i)
	sub := make([]Field, len(semantics))
	for j, sem := range semantics {
		sub[j] = text(t.Key(sem), "Value", "")
	}
	rows := make([]map[string]any, 0, 6)
	for j := 0; j < 6; j++ {
		row := make(map[string]any, len(semantics))
		for k, sem := range semantics {
			row[t.Key(sem)] = strconv.Itoa(sampleValues[(j+i*3+k)%len(sampleValues)])
		}
		rows = append(rows, row)
	}
	return repeater(t.Key("value_list_3_1_repeaters_"+strconv.Itoa(i)), "Values", rows, sub...)
}

func labelValueRepeater(t catalog.ChartType, caps catalog.Capabilities) Field {
	labels := sampleCategories
	if t == catalog.GeoGoogle {
		labels = sampleRegions
	}
	rows := make([]map[string]any, 0, caps.DefaultSeries)
	for i := 0; i < caps.DefaultSeries; i++ {
		rows = append(rows, map[string]any{
			t.Key("chart_label"): labels[i%len(labels)],
			t.Key("chart_value"): strconv.Itoa(sampleValues[i%len(sampleValues)]),
		})
	}
	return repeater(t.Key("values"), "Values", rows,
		text(t.Key("chart_label"), "Label", ""),
		text(t.Key("chart_value"), "Value", ""),
	)
}

func orgRepeater(t catalog.ChartType, caps catalog.Capabilities) Field {
	rows := make([]map[string]any, 0, caps.DefaultSeries)
	for i := 0; i < caps.DefaultSeries && i < len(sampleOrg); i++ {
		rows = append(rows, map[string]any{
			t.Key("chart_label"):   sampleOrg[i][0],
			t.Key("chart_parent"):  sampleOrg[i][1],
			t.Key("chart_tooltip"): "",
			t.Key("chart_value"):   strconv.Itoa(sampleValues[i]),
		})
	}
	return repeater(t.Key("values"), "Nodes", rows,
		text(t.Key("chart_label"), "Name", ""),
		text(t.Key("chart_parent"), "Parent", ""),
		text(t.Key("chart_tooltip"), "Tooltip", ""),
		text(t.Key("chart_value"), "Value", ""),
	)
}

// FilterFields declares the dynamic-data filter dropdown.
func FilterFields(t catalog.ChartType) []Field {
	notManual := Ne{t.Key("chart_data_option"), catalog.DataManual}
	enabled := And{notManual, Eq{t.Key("chart_filter_enable"), On}}
	return []Field{
		when(toggle(t.Key("chart_filter_enable"), "Enable Filter", false), notManual),
		when(repeater(t.Key("chart_filter_list"), "Filters", nil,
			text(t.Key("chart_filter_value_key"), "Placeholder Key", ""),
			text(t.Key("chart_filter_option"), "Options", ""),
		), enabled),
	}
}

// DatatableFields declares the manual table editor and table behaviour.
func DatatableFields(t catalog.ChartType, caps catalog.Capabilities) []Field {
	fields := []Field{
		when(number(t.Key("element_columns"), "Columns", float64(caps.DefaultSeries), 1, catalog.MaxDatatableColumns), manual(t)),
		when(number(t.Key("element_rows"), "Rows", 3, 1, catalog.MaxDatatableRows), manual(t)),
	}
	for j := 0; j < catalog.MaxDatatableColumns; j++ {
		n := strconv.Itoa(j)
		fields = append(fields, when(text(t.Key("chart_header_title_"+n), "Header", fmt.Sprintf("Header %d", j+1)),
			And{manual(t), AtLeast{t.Key("element_columns"), float64(j + 1)}}))
	}
	for i := 0; i < catalog.MaxDatatableRows; i++ {
		n := strconv.Itoa(i)
		var rows []map[string]any
		if i < 3 {
			for j := 0; j < caps.DefaultSeries; j++ {
				rows = append(rows, map[string]any{t.Key("row_value"): fmt.Sprintf("Data %d-%d", i+1, j+1)})
			}
		}
		fields = append(fields, when(repeater(t.Key("row_list"+n), "Row", rows,
			textarea(t.Key("row_value"), "Cell", "")),
			And{manual(t), AtLeast{t.Key("element_rows"), float64(i + 1)}}))
	}
	return append(fields,
		toggle(t.Key("table_search"), "Search", true),
		toggle(t.Key("table_pagination"), "Pagination", true),
		when(number(t.Key("table_page_length"), "Rows Per Page", 10, 1, 500), Eq{t.Key("table_pagination"), On}),
		toggle(t.Key("table_sort"), "Sorting", true),
	)
}

// RestrictionFields declares the password gate.
func RestrictionFields(t catalog.ChartType) []Field {
	return []Field{
		choice(t.Key("restriction_content_type"), "Restrict Content", catalog.RestrictionTypes),
		when(Field{Key: t.Key("restriction_content_password"), Kind: KindPassword, Label: "Password", Default: ""},
			Eq{t.Key("restriction_content_type"), "password"}),
		when(text(t.Key("restriction_content_message"), "Message", "This content is password protected."),
			Eq{t.Key("restriction_content_type"), "password"}),
	}
}
