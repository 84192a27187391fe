package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"atolonline/internal/domain/ports"
)

// ZapLogger реализует ports.Logger поверх zap.SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger создает JSON-логгер в stderr с уровнем level (debug, info, warn, error).
// В режиме development вывод текстовый и цветной.
func NewZapLogger(level string, development bool) (ports.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания логгера: %w", err)
	}
	return &ZapLogger{sugar: l.Sugar()}, nil
}

// NewFromZap оборачивает готовый *zap.Logger (например, zaptest в тестах).
func NewFromZap(l *zap.Logger) ports.Logger {
	return &ZapLogger{sugar: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (l *ZapLogger) Debug(msg string, args ...interface{}) { l.sugar.Debugf(msg, args...) }
func (l *ZapLogger) Info(msg string, args ...interface{})  { l.sugar.Infof(msg, args...) }
func (l *ZapLogger) Warn(msg string, args ...interface{})  { l.sugar.Warnf(msg, args...) }
func (l *ZapLogger) Error(msg string, args ...interface{}) { l.sugar.Errorf(msg, args...) }

func (l *ZapLogger) With(keyvals ...interface{}) ports.Logger {
	return &ZapLogger{sugar: l.sugar.With(keyvals...)}
}

func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// SDKHook адаптирует логгер к Config.Logger клиента atol (уровень debug).
func SDKHook(l ports.Logger) func(string) {
	return func(msg string) {
		l.Debug("%s", msg)
	}
}
