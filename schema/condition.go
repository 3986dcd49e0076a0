package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Values is the read side of a settings bag as seen by conditions.
type Values interface {
	Value(key string) (any, bool)
}

// Condition is a visibility expression over sibling field values.
type Condition interface {
	Eval(v Values) bool
	Keys() []string
}

// Eq holds when the value of Key equals Value.
type Eq struct {
	Key   string
	Value any
}

// Ne holds when the value of Key differs from Value.
type Ne struct {
	Key   string
	Value any
}

// In holds when the value of Key is one of Values.
type In struct {
	Key    string
	Values []any
}

// Range holds when the value of Key is numeric and Min <= value <= Max.
type Range struct {
	Key      string
	Min, Max float64
}

// AtLeast holds when the value of Key is numeric and at least Min.
type AtLeast struct {
	Key string
	Min float64
}

// And holds when every term holds. An empty And holds.
type And []Condition

// Or holds when any term holds. An empty Or does not hold.
type Or []Condition

func (c Eq) Eval(v Values) bool {
	val, _ := v.Value(c.Key)
	return scalarEqual(val, c.Value)
}

func (c Ne) Eval(v Values) bool {
	val, _ := v.Value(c.Key)
	return !scalarEqual(val, c.Value)
}

func (c In) Eval(v Values) bool {
	val, _ := v.Value(c.Key)
	for _, want := range c.Values {
		if scalarEqual(val, want) {
			return true
		}
	}
	return false
}

func (c Range) Eval(v Values) bool {
	val, ok := v.Value(c.Key)
	if !ok {
		return false
	}
	f, ok := toFloat(val)
	if !ok {
		return false
	}
	return f >= c.Min && f <= c.Max
}

func (c AtLeast) Eval(v Values) bool {
	val, ok := v.Value(c.Key)
	if !ok {
		return false
	}
	f, ok := toFloat(val)
	return ok && f >= c.Min
}

func (c And) Eval(v Values) bool {
	for _, term := range c {
		if term != nil && !term.Eval(v) {
			return false
		}
	}
	return true
}

func (c Or) Eval(v Values) bool {
	for _, term := range c {
		if term != nil && term.Eval(v) {
			return true
		}
	}
	return false
}

func (c Eq) Keys() []string      { return []string{c.Key} }
func (c Ne) Keys() []string      { return []string{c.Key} }
func (c In) Keys() []string      { return []string{c.Key} }
func (c Range) Keys() []string   { return []string{c.Key} }
func (c AtLeast) Keys() []string { return []string{c.Key} }
func (c And) Keys() []string     { return termKeys(c) }
func (c Or) Keys() []string      { return termKeys(c) }

func termKeys(terms []Condition) []string {
	var keys []string
	for _, term := range terms {
		if term != nil {
			keys = append(keys, term.Keys()...)
		}
	}
	return keys
}

// Visible evaluates c, treating a nil condition as always visible.
func Visible(c Condition, v Values) bool {
	if c == nil {
		return true
	}
	return c.Eval(v)
}

// The host form framework reads conditions in its own term notation.

type term struct {
	Name     string `json:"name"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type group struct {
	Relation string      `json:"relation"`
	Terms    []Condition `json:"terms"`
}

func (c Eq) MarshalJSON() ([]byte, error) {
	return json.Marshal(term{c.Key, "==", c.Value})
}

func (c Ne) MarshalJSON() ([]byte, error) {
	return json.Marshal(term{c.Key, "!=", c.Value})
}

func (c In) MarshalJSON() ([]byte, error) {
	return json.Marshal(term{c.Key, "in", c.Values})
}

func (c Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(group{"and", []Condition{
		rawTerm{term{c.Key, ">=", c.Min}},
		rawTerm{term{c.Key, "<=", c.Max}},
	}})
}

func (c AtLeast) MarshalJSON() ([]byte, error) {
	return json.Marshal(term{c.Key, ">=", c.Min})
}

func (c And) MarshalJSON() ([]byte, error) {
	return json.Marshal(group{"and", []Condition(c)})
}

func (c Or) MarshalJSON() ([]byte, error) {
	return json.Marshal(group{"or", []Condition(c)})
}

type rawTerm struct{ t term }

func (r rawTerm) Eval(Values) bool             { return false }
func (r rawTerm) Keys() []string               { return []string{r.t.Name} }
func (r rawTerm) MarshalJSON() ([]byte, error) { return json.Marshal(r.t) }

func scalarEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil || asString(a) == asString(b)
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return asString(a) == asString(b)
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}
