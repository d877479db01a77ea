package logging

import (
	"go.uber.org/zap"
)

// Logger is the process-wide sugared logger. InitLogger must be called
// before use; commands do this during flag handling.
var Logger *zap.SugaredLogger

// InitLogger configures the global logger. Verbose switches to the
// development config with debug-level output; otherwise only warnings
// and errors reach the console, keeping report output clean.
func InitLogger(verbose bool) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = logger.Sugar()
}

// L returns the global logger, initializing a quiet one if needed
func L() *zap.SugaredLogger {
	if Logger == nil {
		InitLogger(false)
	}
	return Logger
}
