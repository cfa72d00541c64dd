package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a Logger
type Options struct {
	Level  Level
	Format Format
}

// ZapLogger implements Logger on top of zap. Children created with With
// share the parent's level.
type ZapLogger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// New creates a logger writing to w
func New(w io.Writer, opts Options) *ZapLogger {
	level := zap.NewAtomicLevelAt(opts.Level.zap())

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	var enc zapcore.Encoder
	if opts.Format == FormatText {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return &ZapLogger{logger: zap.New(core), level: level}
}

func zapFields(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out[i] = zap.String(f.Key, v)
		case int:
			out[i] = zap.Int(f.Key, v)
		case float64:
			out[i] = zap.Float64(f.Key, v)
		case bool:
			out[i] = zap.Bool(f.Key, v)
		default:
			out[i] = zap.Any(f.Key, v)
		}
	}
	return out
}

func (l *ZapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, zapFields(fields)...) }
func (l *ZapLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, zapFields(fields)...) }
func (l *ZapLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, zapFields(fields)...) }
func (l *ZapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, zapFields(fields)...) }

// With creates a child logger with the given fields pre-set
func (l *ZapLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &ZapLogger{logger: l.logger.With(zapFields(fields)...), level: l.level}
}

// SetLevel changes the minimum level for this logger and its children
func (l *ZapLogger) SetLevel(level Level) {
	l.level.SetLevel(level.zap())
}

// GetLevel returns the current minimum level
func (l *ZapLogger) GetLevel() Level {
	return levelFromZap(l.level.Level())
}

// Sync flushes buffered entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

var (
	defaultLogger Logger
	defaultMu     sync.RWMutex
	defaultOnce   sync.Once
)

// DefaultLogger returns the process-wide logger. It writes JSON to stderr at
// the level named by VIZAJ_LOG_LEVEL, INFO when unset or invalid.
func DefaultLogger() Logger {
	defaultOnce.Do(func() {
		level, _ := ParseLevel(os.Getenv("VIZAJ_LOG_LEVEL"))
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = New(os.Stderr, Options{Level: level})
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger replaces the process-wide logger
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// Start begins timing op
func Start(logger Logger, op string, fields ...Field) *Span {
	return &Span{logger: logger, op: op, start: time.Now(), fields: fields}
}

// Elapsed returns the time since Start
func (s *Span) Elapsed() time.Duration {
	return time.Since(s.start)
}

// End logs the operation at DEBUG, or at ERROR when err is non-nil
func (s *Span) End(err error, fields ...Field) time.Duration {
	elapsed := s.Elapsed()
	all := make([]Field, 0, len(s.fields)+len(fields)+3)
	all = append(all, Operation(s.op), Latency(elapsed))
	all = append(all, s.fields...)
	all = append(all, fields...)
	if err != nil {
		s.logger.Error(s.op+" failed", append(all, Error(err))...)
	} else {
		s.logger.Debug(s.op, all...)
	}
	return elapsed
}
