// Package log wraps zap with submission-scoped structured fields and a
// process-wide global instance initialised once at boot.
package log

import (
	"context"
	"fmt"
	"os"
	"time"

	"judgeengine/pkg/utils/contextkey"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global *Logger

// Logger wraps a zap.Logger with context-field extraction.
type Logger struct {
	zap   *zap.Logger
	level zapcore.Level
}

// Config controls logger construction.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, console
	Service string
	Env     string
}

// Init builds the global logger from cfg.
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}
	global = l
	return nil
}

// New builds a standalone logger instance.
func New(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	enc := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     rfc3339Encoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(enc)
	} else {
		encoder = zapcore.NewJSONEncoder(enc)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	options := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)}

	var fields []zap.Field
	if cfg.Service != "" {
		fields = append(fields, zap.String("service", cfg.Service))
	}
	if cfg.Env != "" {
		fields = append(fields, zap.String("env", cfg.Env))
	}
	if len(fields) > 0 {
		options = append(options, zap.Fields(fields...))
	}

	return &Logger{zap: zap.New(core, options...), level: level}, nil
}

func rfc3339Encoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(time.RFC3339))
}

// WithContext returns a zap logger enriched with request/trace fields
// carried on ctx.
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if v := ctx.Value(contextkey.TraceID); v != nil {
		fields = append(fields, zap.String("trace_id", fmt.Sprint(v)))
	}
	if v := ctx.Value(contextkey.RequestID); v != nil {
		fields = append(fields, zap.String("request_id", fmt.Sprint(v)))
	}
	if len(fields) == 0 {
		return l.zap
	}
	return l.zap.With(fields...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.zap.Sync() }

func ensure() *Logger {
	if global == nil {
		global, _ = New(Config{Level: "info", Format: "json"})
	}
	return global
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) { ensure().WithContext(ctx).Debug(msg, fields...) }
func Info(ctx context.Context, msg string, fields ...zap.Field)  { ensure().WithContext(ctx).Info(msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...zap.Field)  { ensure().WithContext(ctx).Warn(msg, fields...) }
func Error(ctx context.Context, msg string, fields ...zap.Field) { ensure().WithContext(ctx).Error(msg, fields...) }

// Sync flushes the global logger, if initialised.
func Sync() error {
	if global == nil {
		return nil
	}
	return global.Sync()
}
