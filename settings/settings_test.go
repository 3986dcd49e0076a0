package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/schema"
)

func TestSplitChartID(t *testing.T) {
	tests := []struct {
		in            string
		element, page string
		ok            bool
	}{
		{"3f2a_120", "3f2a", "120", true},
		{"3f2a_120_7", "3f2a", "120_7", true},
		{"3f2a", "", "", false},
		{"_120", "", "", false},
		{"3f2a_", "", "", false},
	}
	for _, tt := range tests {
		e, p, ok := SplitChartID(tt.in)
		if e != tt.element || p != tt.page || ok != tt.ok {
			t.Errorf("SplitChartID(%q) = %q, %q, %v", tt.in, e, p, ok)
		}
	}
}

func TestFindNodeDepthFirst(t *testing.T) {
	tree := []Node{
		{ID: "a", Elements: []Node{
			{ID: "b", Settings: map[string]any{"depth": 1}, Elements: []Node{{ID: "x", Settings: map[string]any{"depth": 2}}}},
		}},
		{ID: "x", Settings: map[string]any{"depth": 0}},
	}
	n := FindNode(tree, "x")
	if n == nil || n.Settings["depth"] != 2 {
		t.Fatalf("FindNode = %#v, want the nested node first", n)
	}
	if FindNode(tree, "missing") != nil {
		t.Error("missing id should return nil")
	}
}

func TestResolveTotality(t *testing.T) {
	r := NewResolver()
	for _, typ := range append(catalog.AllTypes(), "unknown_type") {
		bag := r.Resolve(context.Background(), typ, map[string]any{"a": 1, "b": 2, "c": 3}, "")
		if bag == nil {
			t.Fatalf("%s: nil bag for submitted values", typ)
		}
		for _, key := range bag.Schema().Keys() {
			if _, ok := bag.Value(key); !ok {
				t.Errorf("%s: key %s unresolved", typ, key)
			}
		}
	}
}

func TestResolveFallsBackToDocument(t *testing.T) {
	var asked string
	lookup := DocumentLookupFunc(func(ctx context.Context, pageID string) ([]Node, error) {
		asked = pageID
		return []Node{{ID: "sec", Elements: []Node{{ID: "w1", Settings: map[string]any{
			"iq_line_chart_heading": "<b>Sales</b>",
		}}}}}, nil
	})
	r := NewResolver(WithDocumentLookup(lookup))

	bag := r.Resolve(context.Background(), catalog.Line, map[string]any{"chart_id": "w1_42"}, "w1_42")
	if asked != "42" {
		t.Errorf("document lookup for page %q", asked)
	}
	if bag == nil {
		t.Fatal("expected stored settings")
	}
	if got := bag.Str("chart_heading"); got != "Sales" {
		t.Errorf("heading = %q", got)
	}
	if got := bag.Int("chart_height"); got != 350 {
		t.Errorf("height default = %d", got)
	}

	if r.Resolve(context.Background(), catalog.Line, nil, "nope_42") != nil {
		t.Error("missing element should resolve to nil")
	}
	if r.Resolve(context.Background(), catalog.Line, nil, "nounderscore") != nil {
		t.Error("malformed chart id should resolve to nil")
	}

	failing := NewResolver(WithDocumentLookup(DocumentLookupFunc(func(ctx context.Context, pageID string) ([]Node, error) {
		return nil, errors.New("db down")
	})))
	if failing.Resolve(context.Background(), catalog.Line, nil, "w1_42") != nil {
		t.Error("lookup failure should resolve to nil")
	}
}

func TestResolveDynamicTags(t *testing.T) {
	tags := TagResolverFunc(func(ctx context.Context, key, tag string) (string, bool) {
		switch tag {
		case "[elementor-tag name=\"site-title\"]":
			return "My Site", true
		case "bound":
			return "https://example.com/data.csv", true
		}
		return "", false
	})
	r := NewResolver(WithTagResolver(tags))
	bag := r.Resolve(context.Background(), catalog.Line, map[string]any{
		"iq_line_chart_heading":             "Report for [elementor-tag name=\"site-title\"]",
		"iq_line_chart_data_option":         "dynamic",
		"iq_line_chart_dynamic_data_option": "csv",
		"iq_line_chart_csv_url":             "static.csv",
		"iq_line_chart_height":              "400",
		"__dynamic__":                       map[string]any{"iq_line_chart_csv_url": "bound", "iq_line_chart_height": "bound"},
	}, "")

	if got := bag.Str("chart_heading"); got != "Report for My Site" {
		t.Errorf("heading = %q", got)
	}
	if got := bag.Str("chart_csv_url"); got != "https://example.com/data.csv" {
		t.Errorf("csv url = %q", got)
	}
	if got := bag.Int("chart_height"); got != 400 {
		t.Errorf("non dynamic field was rewritten: %d", got)
	}
	if _, ok := bag.Value("__dynamic__"); ok {
		t.Error("tag map leaked into the bag")
	}
}

func TestSanitize(t *testing.T) {
	s := SchemaFor(catalog.DataTableLite)
	values := map[string]any{
		"iq_data_table_lite_chart_heading": " <b>Title</b> ",
		"iq_data_table_lite_chart_content": "<p>kept</p>",
		"iq_data_table_lite_chart_csv_url": "javascript:alert(1)",
		"iq_data_table_lite_row_list0": []any{
			map[string]any{"iq_data_table_lite_row_value": "<b>cell</b>"},
		},
	}
	Sanitize(s, values)
	if values["iq_data_table_lite_chart_heading"] != "Title" {
		t.Errorf("heading = %q", values["iq_data_table_lite_chart_heading"])
	}
	if values["iq_data_table_lite_chart_content"] != "<p>kept</p>" {
		t.Errorf("html field changed: %q", values["iq_data_table_lite_chart_content"])
	}
	if values["iq_data_table_lite_chart_csv_url"] != "" {
		t.Errorf("script url kept: %q", values["iq_data_table_lite_chart_csv_url"])
	}
	rows := values["iq_data_table_lite_row_list0"].([]map[string]any)
	if rows[0]["iq_data_table_lite_row_value"] != "<b>cell</b>" {
		t.Errorf("html cell changed: %v", rows[0])
	}
}

func TestBagAccessors(t *testing.T) {
	bag := NewBag(catalog.Column, map[string]any{
		"iq_column_chart_data_series_count": "45",
		"iq_column_chart_legend_show":       "yes",
		"iq_column_chart_datalabel_show":    true,
		"iq_column_category_list": map[string]any{
			"1": map[string]any{"iq_column_chart_category": "B"},
			"0": map[string]any{"chart_category": "A"},
		},
	})
	if bag.SeriesCount() != catalog.MaxSeries {
		t.Errorf("series count not clamped: %d", bag.SeriesCount())
	}
	if !bag.Bool("chart_legend_show") || !bag.Bool("chart_datalabel_show") {
		t.Error("switches should be on")
	}
	if bag.Bool("chart_filter_enable") {
		t.Error("filter default should be off")
	}
	rows := bag.Rows("category_list")
	if len(rows) != 2 || rows[0].Str("chart_category") != "A" || rows[1].Str("chart_category") != "B" {
		t.Errorf("rows = %#v", rows)
	}
	if bag.DataOption() != catalog.DataManual {
		t.Errorf("data option = %s", bag.DataOption())
	}
	if bag.StrOr("chart_missing", "fallback") != "fallback" {
		t.Error("StrOr fallback")
	}
	if bag.Str("chart_stroke_show") != schema.On && bag.Str("chart_stroke_show") != schema.Off {
		t.Error("switch should render as yes or empty")
	}
	if !bag.Visible("chart_title_3_0") {
		t.Error("series 0 title should be visible for manual data")
	}
	if !bag.Visible("chart_title_3_29") {
		t.Error("last series title should be visible when the count exceeds the maximum")
	}
	few := NewBag(catalog.Column, map[string]any{"iq_column_chart_data_series_count": 2})
	if !few.Visible("chart_title_3_1") || few.Visible("chart_title_3_2") {
		t.Error("series titles should follow the series count")
	}
}

func TestResolveResetsHiddenFields(t *testing.T) {
	r := NewResolver()
	bag := r.Resolve(context.Background(), catalog.DataTableLite, map[string]any{
		"iq_data_table_lite_table_pagination":  "",
		"iq_data_table_lite_table_page_length": 50,
		"iq_data_table_lite_chart_csv_url":     "https://example.com/hidden.csv",
		"iq_data_table_lite_element_columns":   2,
	}, "")
	if got := bag.Int("table_page_length"); got != 10 {
		t.Errorf("hidden page length = %d, want default", got)
	}
	if got := bag.Str("chart_csv_url"); got != "" {
		t.Errorf("hidden csv url = %q", got)
	}
	if got := bag.Int("element_columns"); got != 2 {
		t.Errorf("visible field reset: %d", got)
	}

	bag = r.Resolve(context.Background(), catalog.DataTableLite, map[string]any{
		"iq_data_table_lite_table_pagination":  "yes",
		"iq_data_table_lite_table_page_length": 50,
		"iq_data_table_lite_element_columns":   2,
	}, "")
	if got := bag.Int("table_page_length"); got != 50 {
		t.Errorf("visible page length = %d", got)
	}
}

func TestResolvePublicKeepsStoredSources(t *testing.T) {
	lookup := DocumentLookupFunc(func(ctx context.Context, pageID string) ([]Node, error) {
		return []Node{{ID: "w1", Settings: map[string]any{
			"iq_line_chart_data_option":          "dynamic",
			"iq_line_chart_dynamic_data_option":  "database",
			"iq_line_chart_import_from_database": "reports",
			"iq_line_chart_sql_query":            "SELECT month, total FROM sales",
			"iq_line_chart_heading":              "Stored",
		}}}, nil
	})
	r := NewResolver(WithDocumentLookup(lookup))
	submitted := map[string]any{
		"iq_line_chart_data_option":          "dynamic",
		"iq_line_chart_dynamic_data_option":  "database",
		"iq_line_chart_import_from_database": "other",
		"iq_line_chart_sql_query":            "SELECT user, pass FROM wp_users",
		"iq_line_chart_heading":              "Submitted",
		"__dynamic__":                        map[string]any{"iq_line_chart_sql_query": "tag"},
	}

	bag := r.ResolvePublic(context.Background(), catalog.Line, submitted, "w1_42")
	if got := bag.Str("chart_sql_query"); got != "SELECT month, total FROM sales" {
		t.Errorf("query = %q", got)
	}
	if got := bag.Str("chart_import_from_database"); got != "reports" {
		t.Errorf("connection = %q", got)
	}
	if got := bag.Str("chart_heading"); got != "Submitted" {
		t.Errorf("heading = %q", got)
	}

	bag = r.ResolvePublic(context.Background(), catalog.Line, submitted, "unknown_42")
	if bag.DataOption() != catalog.DataManual || bag.Str("chart_sql_query") != "" {
		t.Errorf("unstored sources = %s %q", bag.DataOption(), bag.Str("chart_sql_query"))
	}

	bag = r.Resolve(context.Background(), catalog.Line, submitted, "w1_42")
	if got := bag.Str("chart_sql_query"); got != "SELECT user, pass FROM wp_users" {
		t.Errorf("trusted query = %q", got)
	}
}

func TestSchemaForIsCached(t *testing.T) {
	if SchemaFor(catalog.Pie) != SchemaFor(catalog.Pie) {
		t.Error("schema rebuilt for the same type")
	}
}
