// Package schema declares the configuration fields of every chart type.
package schema

import (
	"github.com/bingLAN/chart_driver/catalog"
)

// Kind is the form control type of a field.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindNumber   Kind = "number"
	KindColor    Kind = "color"
	KindSelect   Kind = "select"
	KindSwitch   Kind = "switch"
	KindRepeater Kind = "repeater"
	KindURL      Kind = "url"
	KindPassword Kind = "password"
)

// Switch values as stored by the host form framework.
const (
	On  = "yes"
	Off = ""
)

// Field describes one configuration field. Fields are plain data and are
// never mutated after the schema is built. Source fields name where data is
// read from (provider, URLs, connection, query) and are only taken from
// trusted settings.
type Field struct {
	Key         string          `json:"key"`
	Kind        Kind            `json:"kind"`
	Label       string          `json:"label,omitempty"`
	Default     any             `json:"default"`
	Choices     catalog.Choices `json:"choices,omitempty"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
	HTML        bool            `json:"html,omitempty"`
	Dynamic     bool            `json:"dynamic,omitempty"`
	Source      bool            `json:"source,omitempty"`
	VisibleWhen Condition       `json:"condition,omitempty"`
	// Fields are the per-row sub fields of a repeater.
	Fields []Field `json:"fields,omitempty"`
}

// Visible reports whether the field is shown for the given values.
func (f Field) Visible(v Values) bool {
	return Visible(f.VisibleWhen, v)
}

func bound(f float64) *float64 {
	return &f
}

func text(key, label string, def string) Field {
	return Field{Key: key, Kind: KindText, Label: label, Default: def, Dynamic: true}
}

func textarea(key, label string, def string) Field {
	return Field{Key: key, Kind: KindTextarea, Label: label, Default: def, HTML: true, Dynamic: true}
}

func url(key, label string) Field {
	return Field{Key: key, Kind: KindURL, Label: label, Default: "", Dynamic: true}
}

func number(key, label string, def, min, max float64) Field {
	return Field{Key: key, Kind: KindNumber, Label: label, Default: def, Min: bound(min), Max: bound(max)}
}

func color(key, label, def string) Field {
	return Field{Key: key, Kind: KindColor, Label: label, Default: def}
}

func toggle(key, label string, on bool) Field {
	def := Off
	if on {
		def = On
	}
	return Field{Key: key, Kind: KindSwitch, Label: label, Default: def}
}

func choice(key, label string, choices catalog.Choices) Field {
	return Field{Key: key, Kind: KindSelect, Label: label, Default: catalog.FirstKey(choices), Choices: choices}
}

func repeater(key, label string, rows []map[string]any, fields ...Field) Field {
	return Field{Key: key, Kind: KindRepeater, Label: label, Default: rows, Fields: fields}
}

func when(f Field, c Condition) Field {
	if f.VisibleWhen == nil {
		f.VisibleWhen = c
		return f
	}
	f.VisibleWhen = And{f.VisibleWhen, c}
	return f
}

func source(fields ...Field) []Field {
	for i := range fields {
		fields[i].Source = true
	}
	return fields
}

func whenAll(fields []Field, c Condition) []Field {
	for i := range fields {
		fields[i] = when(fields[i], c)
	}
	return fields
}
