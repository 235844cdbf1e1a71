package utils

import (
	"log"

	"clinicdesk/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration
func InitializeLogger() {
	var cfg zap.Config

	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(logLevel(config.AppConfig.LogLevel))

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// logLevel parses LOG_LEVEL, falling back to info in production and debug otherwise.
func logLevel(raw string) zapcore.Level {
	var lvl zapcore.Level
	if raw != "" && lvl.UnmarshalText([]byte(raw)) == nil {
		return lvl
	}
	if config.IsProduction() {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
