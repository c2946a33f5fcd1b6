// Package logger provides the structured logger of the crudgen command.
//
// It wraps zap's SugaredLogger behind a small interface so callers and
// tests can swap the backend.
package logger

import (
	"os"

	"github.com/code19m/errx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the logging interface used across the command.
type Logger interface {
	// Debugw logs a message with key-value pairs at debug level.
	Debugw(msg string, keysAndValues ...any)
	// Infow logs a message with key-value pairs at info level.
	Infow(msg string, keysAndValues ...any)
	// Warnw logs a message with key-value pairs at warn level.
	Warnw(msg string, keysAndValues ...any)
	// Errorw logs a message with key-value pairs at error level.
	Errorw(msg string, keysAndValues ...any)

	// Infof logs a formatted message at info level.
	Infof(format string, args ...any)
	// Errorf logs a formatted message at error level.
	Errorf(format string, args ...any)

	// With creates a new logger with the given key-value pairs.
	With(keysAndValues ...any) Logger
	// Named adds a sub-scope to the logger's name.
	Named(name string) Logger

	// Sync flushes any buffered log entries.
	Sync() error
}

// logger implements the Logger interface using zap's SugaredLogger.
type logger struct {
	*zap.SugaredLogger
}

// New creates a new Logger instance with the provided configuration.
func New(cfg Config) (Logger, error) {
	zapConfig, err := cfg.getZapConfig()
	if err != nil {
		return nil, errx.Wrap(err)
	}

	var zapLogger *zap.Logger

	// Use custom development encoder for console mode
	if cfg.Encoding == EncodingConsole {
		core := zapcore.NewCore(
			newDevEncoder(zapConfig.EncoderConfig),
			zapcore.Lock(os.Stderr),
			zapConfig.Level,
		)
		zapLogger = zap.New(core)
	} else {
		zapLogger, err = zapConfig.Build()
		if err != nil {
			return nil, errx.Wrap(err)
		}
	}

	return FromZap(zapLogger), nil
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) Logger {
	return &logger{SugaredLogger: l.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return FromZap(zap.NewNop())
}

func (l *logger) With(keysAndValues ...any) Logger {
	return &logger{
		SugaredLogger: l.SugaredLogger.With(keysAndValues...),
	}
}

func (l *logger) Named(name string) Logger {
	return &logger{
		SugaredLogger: l.SugaredLogger.Named(name),
	}
}
