package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Options configures the root logger.
type Options struct {
	Level  string // trace, debug, info, warn, error
	Format string // json or text
	Output io.Writer
	Color  bool
}

var (
	root   hclog.Logger
	rootMu sync.RWMutex
)

func init() {
	root = New(Options{Level: os.Getenv("LOG_LEVEL"), Format: os.Getenv("LOG_FORMAT")})
}

// New builds an hclog logger named "cinebot".
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	color := hclog.ColorOff
	if opts.Color {
		color = hclog.AutoColor
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "cinebot",
		Level:      ParseLevel(opts.Level),
		Output:     out,
		JSONFormat: strings.EqualFold(opts.Format, "json"),
		Color:      color,
	})
}

// ParseLevel maps a level name to an hclog level, defaulting to info.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(strings.TrimSpace(level))
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

// Configure replaces the root logger.
func Configure(opts Options) hclog.Logger {
	l := New(opts)
	SetRoot(l)
	return l
}

// SetRoot installs l as the root logger.
func SetRoot(l hclog.Logger) {
	rootMu.Lock()
	root = l
	rootMu.Unlock()
}

// Root returns the root logger.
func Root() hclog.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Named returns a sub-logger of the root logger.
func Named(name string) hclog.Logger {
	return Root().Named(name)
}

// Info logs at info level with key/value pairs.
func Info(msg string, args ...interface{}) {
	Root().Info(msg, args...)
}

// Warn logs at warn level with key/value pairs.
func Warn(msg string, args ...interface{}) {
	Root().Warn(msg, args...)
}

// Error logs at error level with key/value pairs.
func Error(msg string, args ...interface{}) {
	Root().Error(msg, args...)
}

// Debug logs at debug level with key/value pairs.
func Debug(msg string, args ...interface{}) {
	Root().Debug(msg, args...)
}
