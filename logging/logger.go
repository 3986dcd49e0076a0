// Package logging wraps bolt with the service log configuration and the
// shared request fields.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/felixgeelhaar/bolt/v3"
)

var (
	defaultLogger *bolt.Logger
	once          sync.Once
)

// Config selects the level and output format of the service log.
type Config struct {
	// Level is one of trace, debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is json or console.
	Format string    `yaml:"format"`
	Output io.Writer `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{Level: "info", Format: "console", Output: os.Stdout}
}

func parseLevel(s string) bolt.Level {
	switch strings.ToLower(s) {
	case "trace":
		return bolt.TRACE
	case "debug":
		return bolt.DEBUG
	case "warn", "warning":
		return bolt.WARN
	case "error":
		return bolt.ERROR
	}
	return bolt.INFO
}

// New builds a standalone logger. Output defaults to stdout.
func New(cfg Config) *bolt.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Format == "json" {
		return bolt.New(bolt.NewJSONHandler(out)).SetLevel(parseLevel(cfg.Level))
	}
	return bolt.New(bolt.NewConsoleHandler(out)).SetLevel(parseLevel(cfg.Level))
}

// Init sets the process logger. Only the first call has an effect.
func Init(cfg Config) {
	once.Do(func() {
		defaultLogger = New(cfg)
	})
}

// Get returns the process logger, falling back to DefaultConfig.
func Get() *bolt.Logger {
	Init(DefaultConfig())
	return defaultLogger
}

// LogEvent chains Fields onto a bolt event.
type LogEvent struct {
	event *bolt.Event
}

func NewEvent(e *bolt.Event) *LogEvent {
	return &LogEvent{event: e}
}

func (l *LogEvent) Add(f Field) *LogEvent {
	l.event = f(l.event)
	return l
}

func (l *LogEvent) Msg(msg string) {
	l.event.Msg(msg)
}

// Info starts an info event on the process logger.
func Info() *LogEvent {
	return NewEvent(Get().Info())
}
