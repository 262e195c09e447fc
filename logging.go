package adt

import "go.uber.org/zap"

// Logger is the narrow logging surface the decoder needs: structural
// warnings only, never on the hot path. Satisfied by *ZapLogger, or by any
// type with a matching Warn method.
type Logger interface {
	Warn(msg string, fields ...Field)
}

// Field is a structured logging key/value pair.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// ZapLogger adapts a *zap.Logger to Logger, grounded on dolthub-dolt's
// dependency on go.uber.org/zap (the teacher library does no logging at
// all, being a pure single-file codec with no multi-file or ambiguous-input
// concept).
type ZapLogger struct {
	z *zap.SugaredLogger
}

// NewZapLogger wraps z. A nil z is valid and produces a no-op logger.
func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		return &ZapLogger{}
	}
	return &ZapLogger{z: z.Sugar()}
}

func (l *ZapLogger) Warn(msg string, fields ...Field) {
	if l == nil || l.z == nil {
		return
	}
	kvs := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		kvs = append(kvs, f.Key, f.Value)
	}
	l.z.Warnw(msg, kvs...)
}

// NewDefaultLogger builds a ZapLogger backed by zap's production config,
// for callers that want structural warnings on stderr without building
// their own *zap.Logger. Falls back to a no-op logger if the production
// logger can't be built (e.g. no writable stderr).
func NewDefaultLogger() *ZapLogger {
	z, err := zap.NewProduction()
	if err != nil {
		return NewZapLogger(nil)
	}
	return NewZapLogger(z)
}

// warn is a nil-safe helper used throughout the decoder.
func warn(log Logger, msg string, fields ...Field) {
	if log == nil {
		return
	}
	log.Warn(msg, fields...)
}
