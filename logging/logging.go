package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. format is "console" for human-readable
// output; anything else produces JSON lines.
func New(level, format, service string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, format, service)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, format, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// RouteEvent is a single outcome of handling a route.
type RouteEvent struct {
	Route      string
	StatusCode int
	Message    string
	UserID     string
	RequestID  string
}

// RouteLogger records route outcomes.
type RouteLogger struct {
	log zerolog.Logger
}

// NewRouteLogger wraps a logger.
func NewRouteLogger(log zerolog.Logger) RouteLogger {
	return RouteLogger{log: log}
}

// Log writes one route event. 5xx outcomes log at error level, 4xx at warn.
func (l RouteLogger) Log(ev RouteEvent) {
	var e *zerolog.Event
	switch {
	case ev.StatusCode >= 500:
		e = l.log.Error()
	case ev.StatusCode >= 400:
		e = l.log.Warn()
	default:
		e = l.log.Info()
	}

	e = e.Str("route", ev.Route).Int("status_code", ev.StatusCode)
	if ev.UserID != "" {
		e = e.Str("user_id", ev.UserID)
	}
	if ev.RequestID != "" {
		e = e.Str("request_id", ev.RequestID)
	}
	e.Msg(ev.Message)
}

// Nop returns a RouteLogger that discards everything.
func Nop() RouteLogger {
	return RouteLogger{log: zerolog.Nop()}
}
