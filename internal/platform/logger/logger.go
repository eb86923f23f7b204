// Package logger holds the process zerolog logger and the request-scoped
// fields (request id, tenant) attached to it.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"delivery-date-service/internal/platform/config/raw"

	"github.com/rs/zerolog"
)

type Options struct {
	Level   string
	Format  string // json or console
	Service string
	Writer  io.Writer
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT and LOG_SERVICE.
func FromEnv() Options {
	return Options{
		Level:   raw.Get("LOG_LEVEL", "info"),
		Format:  strings.ToLower(raw.Get("LOG_FORMAT", "json")),
		Service: raw.Get("LOG_SERVICE", "delivery-date-service"),
	}
}

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

type Logger = zerolog.Logger

// Get returns the root logger, initializing it from the environment if
// Init has not run.
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger. Only the first call wins.
func Init(opt Options) {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		ctx := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if opt.Service != "" {
			ctx = ctx.Str("service", opt.Service)
		}
		log := ctx.Logger()
		root.Store(&log)
	})
}

// parseLevel falls back to info for empty or unknown levels.
func parseLevel(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyTenantID
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func WithTenant(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, keyTenantID, tenantID)
}

// C returns the root logger with the request id and tenant stored in ctx.
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyTenantID).(string); s != "" {
		b = b.Str("tenant_id", s)
	}
	l := b.Logger()
	return &l
}

// Named returns a child logger with a component field.
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}
