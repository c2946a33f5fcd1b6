package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// devEncoder prints console lines with a colored level and the call-site
// fields as sorted key=value pairs. Fields added with With are kept by the
// embedded console encoder.
type devEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newDevEncoder(encoderConfig zapcore.EncoderConfig) zapcore.Encoder {
	encoderConfig.EncodeLevel = func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(colorizeLevel(l))
	}
	return &devEncoder{
		Encoder: zapcore.NewConsoleEncoder(encoderConfig),
		pool:    buffer.NewPool(),
	}
}

// Clone keeps derived loggers on the dev format.
func (e *devEncoder) Clone() zapcore.Encoder {
	return &devEncoder{Encoder: e.Encoder.Clone(), pool: e.pool}
}

// EncodeEntry formats the entry as "<time> <LEVEL> <logger> <msg> k=v ...".
func (e *devEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := e.Encoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}
	defer line.Free()

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	buf := e.pool.Get()
	buf.AppendString(strings.TrimRight(line.String(), "\n"))
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.AppendString(" ")
		buf.AppendString(color.New(color.FgCyan).Sprint(k))
		buf.AppendString("=")
		buf.AppendString(fmt.Sprint(enc.Fields[k]))
	}
	buf.AppendString("\n")
	return buf, nil
}

// colorizeLevel returns the capital level name colored by severity.
func colorizeLevel(level zapcore.Level) string {
	var c *color.Color
	switch level {
	case zapcore.DebugLevel:
		c = color.New(color.FgBlue)
	case zapcore.InfoLevel:
		c = color.New(color.FgGreen)
	case zapcore.WarnLevel:
		c = color.New(color.FgYellow)
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgMagenta)
	}
	return c.Sprint(level.CapitalString())
}
