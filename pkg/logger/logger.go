// pkg/logger/logger.go

package logger

import (
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Initialize sets up the global logger: human-readable console output on
// stderr plus a JSON file sink when a writable log path exists. stdout is
// reserved for command output.
func Initialize() {
	path, err := FindWritableLogPath()
	if err != nil {
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
		otelzap.ReplaceGlobals(otelzap.New(log))
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	writer, err := GetLogFileWriter(path)
	if err != nil {
		writer = zapcore.AddSync(os.Stderr)
	}

	level := ParseLogLevel(os.Getenv("STAGEHAND_LOG_LEVEL"))
	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, level),
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(log)
	otelzap.ReplaceGlobals(otelzap.New(log))
	log.Debug("Logger initialized", zap.String("log_path", path))
}

// NewFallbackLogger builds a console-only logger for when no log file is
// writable.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		ParseLogLevel(os.Getenv("STAGEHAND_LOG_LEVEL")),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitFallback guarantees a usable global logger. Safe to call repeatedly.
func InitFallback() {
	if log != nil {
		return
	}
	Initialize()
}

// L returns the global logger, initializing a fallback if needed.
func L() *zap.Logger {
	InitFallback()
	return log
}

// GetLogger is an alias for L kept for call-site readability.
func GetLogger() *zap.Logger {
	return L()
}

// Sync flushes buffered log entries.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}

// DefaultConsoleEncoderConfig returns the compact console encoding used for
// terminal output.
func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// ParseLogLevel maps an environment string to a zap level, defaulting to Info.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
