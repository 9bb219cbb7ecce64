package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создает SugaredLogger в формате JSON с полем service.
// level - атомарный уровень, который можно менять во время работы (см. SetLevel)
func New(service string, level zap.AtomicLevel) (*zap.SugaredLogger, error) {
	config := zap.NewProductionConfig()
	config.Level = level
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	config.InitialFields = map[string]interface{}{
		"service": service,
	}

	log, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("config.Build: %w", err)
	}

	return log.Sugar(), nil
}

// ParseLevel преобразует строку из конфигурации в уровень zap (debug, info, warn, error)
func ParseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q: %w", s, err)
	}
	return level, nil
}

// NewAtomicLevel создает атомарный уровень из строки; неизвестное значение дает info
func NewAtomicLevel(s string) (zap.AtomicLevel, error) {
	level, err := ParseLevel(s)
	return zap.NewAtomicLevelAt(level), err
}

// SetLevel меняет уровень логирования во время работы
func SetLevel(atomic zap.AtomicLevel, s string) error {
	level, err := ParseLevel(s)
	if err != nil {
		return err
	}
	atomic.SetLevel(level)
	return nil
}
