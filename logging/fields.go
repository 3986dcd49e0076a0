package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

func RequestID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("request_id", id)
	}
}

// Action adds the AJAX action name.
func Action(action string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("action", action)
	}
}

func ChartType(t string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("chart_type", t)
	}
}

func ChartID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("chart_id", id)
	}
}

// Connection adds a database connection name.
func Connection(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("connection", name)
	}
}

// Provider adds the data provider key.
func Provider(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("provider", name)
	}
}

func Status(ok bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("status", ok)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field. A nil error adds nothing.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
