package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sarchlab/akita/v4/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sarchlab/rvvicheck/check"
	"github.com/sarchlab/rvvicheck/lexer"
)

// logLevel maps LOGGING_LEVEL to a zap level. Unknown values mean INFO.
func logLevel(name string) zapcore.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// newLogger builds a console logger on w. verbose forces debug level.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := logLevel(os.Getenv("LOGGING_LEVEL"))
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core)
}

// recordLogger is a checker hook that logs every accepted record.
type recordLogger struct {
	log *zap.Logger
}

func (h *recordLogger) Func(ctx sim.HookCtx) {
	if ctx.Pos != check.HookPosRecord {
		return
	}

	rec, ok := ctx.Item.(*check.Record)
	if !ok {
		return
	}

	fields := []zap.Field{
		zap.Stringer("keyword", rec.Keyword),
		zap.Int("hart", rec.Hart),
		zap.Strings("tokens", rec.Tokens[1:]),
	}
	if line, ok := ctx.Detail.(*lexer.LogicalLine); ok {
		fields = append(fields, zap.Int("line", line.Line))
	}
	if rec.Slot >= 0 {
		fields = append(fields, zap.Int64("slot", rec.Slot))
	}

	h.log.Debug("record accepted", fields...)
}
