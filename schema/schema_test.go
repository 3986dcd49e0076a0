package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/bingLAN/chart_driver/catalog"
)

type mapValues map[string]any

func (m mapValues) Value(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func TestBuildIsStable(t *testing.T) {
	for _, typ := range append(catalog.AllTypes(), "unknown_type") {
		t.Run(string(typ), func(t *testing.T) {
			a, b := Build(typ), Build(typ)
			if !reflect.DeepEqual(a.Keys(), b.Keys()) {
				t.Fatal("key sets differ between builds")
			}
			if !reflect.DeepEqual(a.Defaults(), b.Defaults()) {
				t.Fatal("defaults differ between builds")
			}
		})
	}
}

func TestBuildHasNoDuplicateKeys(t *testing.T) {
	for _, typ := range catalog.AllTypes() {
		seen := make(map[string]bool)
		for _, k := range Build(typ).Keys() {
			if seen[k] {
				t.Errorf("%s: duplicate key %s", typ, k)
			}
			seen[k] = true
			if !strings.HasPrefix(k, "iq_"+string(typ)+"_") {
				t.Errorf("%s: key %s is not namespaced", typ, k)
			}
		}
	}
}

func TestBuildUnknownTypeFallsBack(t *testing.T) {
	s := Build("sparkline")
	if _, ok := s.Field("iq_sparkline_chart_card_show"); !ok {
		t.Error("card fragment missing")
	}
	if _, ok := s.Field("iq_sparkline_chart_data_option"); !ok {
		t.Error("data option fragment missing")
	}
	if _, ok := s.Field("iq_sparkline_chart_height"); !ok {
		t.Error("style fragment missing")
	}
	if _, ok := s.Field("iq_sparkline_chart_legend_show"); ok {
		t.Error("legend fragment should not be declared for unknown types")
	}
}

func TestBrushHasTwoTickControls(t *testing.T) {
	s := Build(catalog.Brush)
	for _, k := range []string{"iq_brush_chart_yaxis_tick_amount_1", "iq_brush_chart_yaxis_tick_amount_2"} {
		if _, ok := s.Field(k); !ok {
			t.Errorf("missing %s", k)
		}
	}
	if _, ok := s.Field("iq_brush_chart_yaxis_tick_amount"); ok {
		t.Error("brush should not declare the single tick control")
	}
	if _, ok := Build(catalog.Line).Field("iq_line_chart_yaxis_tick_amount"); !ok {
		t.Error("line should declare the single tick control")
	}
}

func TestCenterLabelOnlyForCircleTypes(t *testing.T) {
	tests := map[catalog.ChartType]bool{
		catalog.Pie:    true,
		catalog.Donut:  true,
		catalog.Radial: true,
		catalog.Polar:  false,
		catalog.Line:   false,
	}
	for typ, want := range tests {
		_, got := Build(typ).Field(typ.Key("chart_center_datalabel_show"))
		if got != want {
			t.Errorf("%s center label = %v, want %v", typ, got, want)
		}
	}
}

func TestSeriesColorDefaults(t *testing.T) {
	s := Build(catalog.Column)
	if d := s.Default("iq_column_chart_gradient_1_0"); d != catalog.ColorAt(0) {
		t.Errorf("color 0 default = %v", d)
	}
	if d := s.Default("iq_column_chart_gradient_2_3"); d != catalog.GradientAt(3) {
		t.Errorf("gradient 3 default = %v", d)
	}
	if s.Default("iq_column_missing") != nil {
		t.Error("unknown key should have nil default")
	}
}

func TestPerSeriesVisibility(t *testing.T) {
	s := Build(catalog.Line)
	f, ok := s.Field("iq_line_chart_title_3_2")
	if !ok {
		t.Fatal("series 2 title missing")
	}
	v := mapValues{"iq_line_chart_data_option": "manual", "iq_line_chart_data_series_count": 2}
	if f.Visible(v) {
		t.Error("series 2 should be hidden with two series")
	}
	v["iq_line_chart_data_series_count"] = "3"
	if !f.Visible(v) {
		t.Error("series 2 should be visible with three series")
	}
	v["iq_line_chart_data_option"] = "dynamic"
	if f.Visible(v) {
		t.Error("manual fields should be hidden for dynamic data")
	}
}

func TestConditions(t *testing.T) {
	v := mapValues{"a": "yes", "n": 5, "s": "top"}
	tests := []struct {
		name string
		c    Condition
		want bool
	}{
		{"eq", Eq{"a", "yes"}, true},
		{"eq numeric string", Eq{"n", "5"}, true},
		{"eq missing empty", Eq{"missing", ""}, true},
		{"ne", Ne{"a", ""}, true},
		{"in", In{"s", []any{"top", "bottom"}}, true},
		{"in miss", In{"s", []any{"left"}}, false},
		{"range", Range{"n", 1, 5}, true},
		{"range out", Range{"n", 6, 10}, false},
		{"range missing", Range{"missing", 0, 10}, false},
		{"and", And{Eq{"a", "yes"}, Range{"n", 1, 9}}, true},
		{"and fail", And{Eq{"a", "yes"}, Eq{"s", "left"}}, false},
		{"or", Or{Eq{"a", "no"}, Eq{"s", "top"}}, true},
		{"empty or", Or{}, false},
		{"empty and", And{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Eval(v); got != tt.want {
				t.Errorf("Eval = %v, want %v", got, tt.want)
			}
		})
	}
	if !Visible(nil, v) {
		t.Error("nil condition should be visible")
	}
}

type conditionNode struct {
	Relation string          `json:"relation"`
	Terms    []conditionNode `json:"terms"`
	Name     string          `json:"name"`
	Operator string          `json:"operator"`
	Value    any             `json:"value"`
}

func (n conditionNode) flatten(out []string) []string {
	if n.Relation != "" {
		out = append(out, n.Relation)
		for _, term := range n.Terms {
			out = term.flatten(out)
		}
		return out
	}
	return append(out, n.Name+" "+n.Operator)
}

func TestConditionJSON(t *testing.T) {
	c := And{Eq{"a", "yes"}, Or{In{"b", []any{"x"}}, Range{"n", 1, 3}}, AtLeast{"m", 2}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	var root conditionNode
	if err := json.Unmarshal(data, &root); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	want := []string{"and", "a ==", "or", "b in", "and", "n >=", "n <=", "m >="}
	if got := root.flatten(nil); !reflect.DeepEqual(got, want) {
		t.Errorf("condition tree = %v, want %v", got, want)
	}
	if v := root.Terms[2].Value; v != 2.0 {
		t.Errorf("at least bound = %v", v)
	}
	if keys := c.Keys(); !reflect.DeepEqual(keys, []string{"a", "b", "n", "m"}) {
		t.Errorf("Keys = %v", keys)
	}
}

func TestAtLeast(t *testing.T) {
	c := AtLeast{"count", 3}
	for _, tt := range []struct {
		v    any
		want bool
	}{
		{3, true},
		{"45", true},
		{2.5, false},
		{"", false},
		{nil, false},
	} {
		if got := c.Eval(mapValues{"count": tt.v}); got != tt.want {
			t.Errorf("AtLeast(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if c.Eval(mapValues{}) {
		t.Error("missing key should not hold")
	}
}

func TestDataOptionDefaults(t *testing.T) {
	s := Build(catalog.PieGoogle)
	if d := s.Default("iq_pie_google_chart_data_option"); d != catalog.DataManual {
		t.Errorf("data option default = %v", d)
	}
	rows, ok := s.Default("iq_pie_google_values").([]map[string]any)
	if !ok || len(rows) != catalog.Lookup(catalog.PieGoogle).DefaultSeries {
		t.Fatalf("values default = %#v", s.Default("iq_pie_google_values"))
	}
	if rows[0]["iq_pie_google_chart_label"] != "Jan" {
		t.Errorf("first label = %v", rows[0]["iq_pie_google_chart_label"])
	}
}

func TestPointSemantics(t *testing.T) {
	if got := PointSemantics(catalog.Candle, 1); len(got) != 4 || got[0] != "chart_close_3_1" {
		t.Errorf("candle semantics = %v", got)
	}
	if got := PointSemantics(catalog.Line, 0); !reflect.DeepEqual(got, []string{"chart_value_3_0"}) {
		t.Errorf("line semantics = %v", got)
	}
}
