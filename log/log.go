// Package log builds the zap logger of the emufog tool and carries it
// through context.Context.
//
// Library packages take a *zap.Logger option and default to zap.NewNop();
// only the command line builds a real logger from Config.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatConsole renders human readable lines.
	FormatConsole = "console"
	// FormatJSON renders one JSON object per line.
	FormatJSON = "json"

	// DefaultLevel is the level used when none is configured.
	DefaultLevel = "info"
)

// Config is the [log] block of the configuration file.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level,omitempty" yaml:"level,omitempty"`
	// Format is console or json.
	Format string `toml:"format,omitempty" yaml:"format,omitempty"`
}

// InitDefaults sets empty fields to their defaults.
func (c *Config) InitDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
}

// Validate checks level and format.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Level); err != nil {
		return errors.Wrapf(err, "log level %q", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case FormatConsole, FormatJSON:
	default:
		return errors.Errorf("log format %q, want %s or %s", c.Format, FormatConsole, FormatJSON)
	}
	return nil
}

// Sample writes the commented [log] block.
func (c *Config) Sample(dst io.Writer) {
	fmt.Fprintf(dst, logSample, DefaultLevel, DefaultLevel, FormatConsole)
}

// ConfigName is the name of the configuration block.
func (c *Config) ConfigName() string { return "log" }

const logSample = `# Log level: debug, info, warn or error. (default %s)
level = "%s"

# Output format: console or json. (default console)
format = "%s"
`

// New builds a logger writing to stderr according to cfg.
func New(cfg Config) (*zap.Logger, error) {
	cfg.InitDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lvl, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var zc zap.Config
	if strings.ToLower(cfg.Format) == FormatJSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	}
	zc.Level = lvl
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "building logger")
	}
	return l, nil
}

type loggerContextKey string

const loggerKey loggerContextKey = "logger"

// CtxWith returns a new context, based on ctx, that embeds logger. Attaching
// a logger to a context which already contains one overwrites the existing
// value.
func CtxWith(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		panic("nil context")
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromCtx returns the logger embedded in ctx, or the global zap logger if
// there is none. FromCtx never returns nil.
func FromCtx(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.L()
}
