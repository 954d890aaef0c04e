package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "catalog-api"

// New creates the process logger. Production writes JSON to stdout,
// anything else writes colored console lines.
func New(env string) (*zap.Logger, error) {
	return NewWithWriter(env, os.Stdout), nil
}

// NewWithWriter builds the same logger as New but writes to w
func NewWithWriter(env string, w io.Writer) *zap.Logger {
	level := zapcore.DebugLevel
	if env == "production" {
		level = zapcore.InfoLevel
	}

	core := zapcore.NewCore(encoder(env), zapcore.AddSync(w), level)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).With(zap.String("service", serviceName))
}

func encoder(env string) zapcore.Encoder {
	if env == "production" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
