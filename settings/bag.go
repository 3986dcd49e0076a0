// Package settings resolves the effective configuration of one chart widget.
package settings

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bingLAN/chart_driver/catalog"
	"github.com/bingLAN/chart_driver/common"
	"github.com/bingLAN/chart_driver/schema"
	cmap "github.com/orcaman/concurrent-map"
)

var schemas = cmap.New() // chart type---*schema.Schema

// SchemaFor returns the schema of t, building it once per type.
func SchemaFor(t catalog.ChartType) *schema.Schema {
	if s, ok := schemas.Get(string(t)); ok {
		return s.(*schema.Schema)
	}
	s := schema.Build(t)
	if !schemas.SetIfAbsent(string(t), s) {
		cached, _ := schemas.Get(string(t))
		return cached.(*schema.Schema)
	}
	return s
}

// Bag holds every field of one widget resolved to a value. Keys are full
// field keys; accessors take the semantic name and add the type prefix.
type Bag struct {
	Type   catalog.ChartType
	schema *schema.Schema
	values map[string]any
}

// NewBag overlays values on the schema defaults of t.
func NewBag(t catalog.ChartType, values map[string]any) *Bag {
	s := SchemaFor(t)
	merged := s.Defaults()
	for k, v := range values {
		merged[k] = v
	}
	return &Bag{Type: t, schema: s, values: merged}
}

// Schema returns the field declarations behind the bag.
func (b *Bag) Schema() *schema.Schema {
	return b.schema
}

// Key returns the full key of a semantic field name.
func (b *Bag) Key(semantic string) string {
	return b.Type.Key(semantic)
}

// Value implements schema.Values over full keys.
func (b *Bag) Value(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[key]
	return v, ok
}

// Raw returns the value of a semantic field, nil when undeclared and unset.
func (b *Bag) Raw(semantic string) any {
	v, _ := b.Value(b.Key(semantic))
	return v
}

// Has reports whether the semantic field has a non-empty value.
func (b *Bag) Has(semantic string) bool {
	v := b.Raw(semantic)
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

func (b *Bag) Str(semantic string) string {
	return asString(b.Raw(semantic))
}

// StrOr is Str with def for empty values.
func (b *Bag) StrOr(semantic, def string) string {
	if s := b.Str(semantic); s != "" {
		return s
	}
	return def
}

func (b *Bag) Float(semantic string) float64 {
	return common.NumberOrZero(b.Raw(semantic))
}

func (b *Bag) Int(semantic string) int {
	return int(b.Float(semantic))
}

// IntOr is Int with def for non numeric values.
func (b *Bag) IntOr(semantic string, def int) int {
	if f, ok := common.ParseNumber(b.Raw(semantic)); ok {
		return int(f)
	}
	return def
}

// Bool reads a switch. Switches store "yes" when on.
func (b *Bag) Bool(semantic string) bool {
	return asBool(b.Raw(semantic))
}

// Rows returns the rows of a repeater field.
func (b *Bag) Rows(semantic string) []Row {
	return toRows(b.Type, b.Raw(semantic))
}

// Visible evaluates the visibility condition of a semantic field.
func (b *Bag) Visible(semantic string) bool {
	f, ok := b.schema.Field(b.Key(semantic))
	if !ok {
		return false
	}
	return f.Visible(b)
}

// Map returns a copy of the resolved values.
func (b *Bag) Map() map[string]any {
	res := make(map[string]any, len(b.values))
	for k, v := range b.values {
		res[k] = v
	}
	return res
}

// SeriesCount returns the configured series count clamped to [1, MaxSeries].
func (b *Bag) SeriesCount() int {
	caps := catalog.Lookup(b.Type)
	n := b.IntOr("chart_data_series_count", caps.DefaultSeries)
	if n < 1 {
		n = 1
	}
	if n > caps.MaxSeries {
		n = caps.MaxSeries
	}
	return n
}

// DataOption returns the data source mode, manual when unset.
func (b *Bag) DataOption() string {
	return b.StrOr("chart_data_option", catalog.DataManual)
}

// Row is one repeater row.
type Row struct {
	t      catalog.ChartType
	values map[string]any
}

// Raw returns a row cell by semantic name, accepting unprefixed keys too.
func (r Row) Raw(semantic string) any {
	if v, ok := r.values[r.t.Key(semantic)]; ok {
		return v
	}
	return r.values[semantic]
}

func (r Row) Str(semantic string) string {
	return asString(r.Raw(semantic))
}

// Map returns the row cells.
func (r Row) Map() map[string]any {
	return r.values
}

func toRows(t catalog.ChartType, v any) []Row {
	switch rows := v.(type) {
	case []Row:
		return rows
	case []map[string]any:
		res := make([]Row, 0, len(rows))
		for _, m := range rows {
			res = append(res, Row{t: t, values: m})
		}
		return res
	case []any:
		res := make([]Row, 0, len(rows))
		for _, item := range rows {
			if m, ok := item.(map[string]any); ok {
				res = append(res, Row{t: t, values: m})
			}
		}
		return res
	case map[string]any:
		// form encoded repeaters arrive keyed by row index
		idx := make([]int, 0, len(rows))
		for k := range rows {
			if i, err := strconv.Atoi(k); err == nil {
				idx = append(idx, i)
			}
		}
		sort.Ints(idx)
		res := make([]Row, 0, len(idx))
		for _, i := range idx {
			if m, ok := rows[strconv.Itoa(i)].(map[string]any); ok {
				res = append(res, Row{t: t, values: m})
			}
		}
		return res
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return schema.On
		}
		return schema.Off
	}
	return common.CellString(v)
}

func asBool(v any) bool {
	switch s := v.(type) {
	case bool:
		return s
	case string:
		switch strings.ToLower(s) {
		case schema.On, "true", "1", "on":
			return true
		}
	case float64:
		return s != 0
	case int:
		return s != 0
	}
	return false
}
