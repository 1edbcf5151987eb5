package logger

import (
	"os"
	"strings"

	"github.com/cyphera/cyphera-autotax/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until InitLogger
// runs, so packages may log from init paths and tests without setup.
var Log = zap.NewNop()

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level       string `json:"level"`
	Stage       string `json:"stage"`
	EnableJSON  bool   `json:"enable_json"`
	EnableColor bool   `json:"enable_color"`
}

// InitLogger configures Log for stage. LOG_LEVEL selects the level; prod logs
// JSON, every other stage logs coloured console lines.
func InitLogger(stage string) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	InitLoggerWithConfig(LoggerConfig{
		Level:       level,
		Stage:       stage,
		EnableJSON:  stage == constants.ProdEnvironment,
		EnableColor: stage != constants.ProdEnvironment,
	})
}

// InitLoggerWithConfig replaces Log. It panics if zap rejects the config.
func InitLoggerWithConfig(config LoggerConfig) {
	built, err := buildConfig(config).Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = built
}

func buildConfig(config LoggerConfig) zap.Config {
	level := ParseLevel(config.Level)
	prod := config.Stage == constants.ProdEnvironment

	var zc zap.Config
	if prod || config.EnableJSON {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.MessageKey = "message"
		zc.InitialFields = map[string]interface{}{
			"service": constants.ServiceName,
			"stage":   config.Stage,
		}
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if config.EnableColor {
			zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zc.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableStacktrace = prod && level > zapcore.DebugLevel
	return zc
}

// ParseLevel maps a LOG_LEVEL string to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case constants.ErrorLevel:
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Component returns Log named after a subsystem, e.g. "engine" or "catalog".
// The name is fixed when called, so call it after InitLogger.
func Component(name string) *zap.Logger {
	return Log.Named(name)
}

func Info(msg string, fields ...zapcore.Field) {
	Log.Info(msg, fields...)
}

func Error(msg string, fields ...zapcore.Field) {
	Log.Error(msg, fields...)
}

func Debug(msg string, fields ...zapcore.Field) {
	Log.Debug(msg, fields...)
}

func Warn(msg string, fields ...zapcore.Field) {
	Log.Warn(msg, fields...)
}

// Fatal logs at FatalLevel and then calls os.Exit(1).
func Fatal(msg string, fields ...zapcore.Field) {
	Log.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Log.Sync()
}
