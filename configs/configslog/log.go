package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Log is the structured logger (zap fields).
	Log *zap.Logger
	// SLog is the sugared logger for printf-style messages.
	SLog *zap.SugaredLogger
)

func init() {
	// Nop until InitLogger runs (tests never call it).
	Log = zap.NewNop()
	SLog = Log.Sugar()
}

// InitLogger builds a development or production logger depending on APP_ENV.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(parsed)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		panic("logger could not be initialized: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered entries. Call it with defer from main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
