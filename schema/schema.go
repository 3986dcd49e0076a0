package schema

import (
	"github.com/bingLAN/chart_driver/catalog"
)

// Schema is the ordered field list of one chart type.
type Schema struct {
	Type   catalog.ChartType `json:"type"`
	Fields []Field           `json:"fields"`
	index  map[string]int
}

func newSchema(t catalog.ChartType, groups ...[]Field) *Schema {
	s := &Schema{Type: t, index: make(map[string]int)}
	for _, g := range groups {
		for _, f := range g {
			if _, dup := s.index[f.Key]; dup {
				continue
			}
			s.index[f.Key] = len(s.Fields)
			s.Fields = append(s.Fields, f)
		}
	}
	return s
}

// Field looks a descriptor up by its full key.
func (s *Schema) Field(key string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return s.Fields[i], true
}

// Keys returns the field keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Default returns the declared default of key, or nil for unknown keys.
func (s *Schema) Default(key string) any {
	f, ok := s.Field(key)
	if !ok {
		return nil
	}
	return f.Default
}

// Defaults returns a fresh key -> default map.
func (s *Schema) Defaults() map[string]any {
	res := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		res[f.Key] = f.Default
	}
	return res
}

// Build declares the full field set for t. Unknown types get the common
// card, data option and style fragments only.
func Build(t catalog.ChartType) *Schema {
	caps := catalog.Lookup(t)
	if !t.Known() {
		return newSchema(t, CardFields(t), DataOptionFields(t, caps), StyleFields(t, caps))
	}

	switch {
	case caps.Datatable:
		return newSchema(t,
			CardFields(t),
			DataOptionFields(t, caps),
			DatatableFields(t, caps),
			RestrictionFields(t),
		)
	case caps.Google:
		return newSchema(t,
			CardFields(t),
			DataOptionFields(t, caps),
			ManualDataFields(t, caps),
			FilterFields(t),
			StyleFields(t, caps),
			GoogleFields(t, caps),
			SeriesColorFields(t, caps),
			RestrictionFields(t),
		)
	}

	groups := [][]Field{
		CardFields(t),
		DataOptionFields(t, caps),
		ManualDataFields(t, caps),
		FilterFields(t),
		StyleFields(t, caps),
		DataLabelFields(t, caps),
		LegendFields(t, caps),
		TooltipFields(t, caps),
	}
	if !caps.Circle {
		groups = append(groups, XAxisFields(t, caps), YAxisFields(t, caps))
	}
	groups = append(groups,
		StrokeFields(t, caps),
		FillFields(t, caps),
		AnimationFields(t),
		RestrictionFields(t),
	)
	return newSchema(t, groups...)
}
