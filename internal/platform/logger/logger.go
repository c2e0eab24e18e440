// Package logger owns the process zerolog root and request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"marquee/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger under the project name
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
	Fields      map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options { return fromEnv(raw.New().Prefix("LOG_")) }

func fromEnv(e raw.Env) Options {
	return Options{
		Level:       strings.ToLower(e.String("LEVEL", "info")),
		Format:      strings.ToLower(e.String("FORMAT", "console")),
		Service:     e.String("SERVICE", "marquee-api"),
		WithCaller:  e.Bool("CALLER", false),
		SampleEvery: e.Int("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root *Logger
)

// Init builds the root logger. Only the first call, or the first Get, counts
func Init(opt Options) {
	once.Do(func() { root = build(opt) })
}

// Get returns the root logger, configured from the environment when Init was
// never called
func Get() *Logger {
	Init(FromEnv())
	return root
}

func build(opt Options) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	fields := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields = fields.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		fields = fields.Str("service", opt.Service)
	}
	for k, v := range opt.Fields {
		fields = fields.Str(k, v)
	}
	if opt.WithCaller {
		fields = fields.Caller()
	}

	l := fields.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return &l
}

// level maps a name onto a zerolog level, unknown names mean info
func level(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type ctxKey int

const (
	requestIDKey ctxKey = iota
	listingIDKey
)

// WithRequest stores the request and listing ids that C attaches. Empty
// values leave any earlier value in place
func WithRequest(ctx context.Context, reqID, listingID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, requestIDKey, reqID)
	}
	if listingID != "" {
		ctx = context.WithValue(ctx, listingIDKey, listingID)
	}
	return ctx
}

// C returns a root child carrying request_id and listing_id from ctx
func C(ctx context.Context) *Logger {
	fields := Get().With()
	if v, _ := ctx.Value(requestIDKey).(string); v != "" {
		fields = fields.Str("request_id", v)
	}
	if v, _ := ctx.Value(listingIDKey).(string); v != "" {
		fields = fields.Str("listing_id", v)
	}
	l := fields.Logger()
	return &l
}
