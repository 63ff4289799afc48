package initializers

import (
	"strings"

	"go.uber.org/zap"
)

// Log is a no-op until InitLogger runs, so packages can log unconditionally.
var Log = zap.NewNop().Sugar()

func InitLogger(env string) {
	var cfg zap.Config
	switch strings.ToLower(env) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	Log = logger.Sugar()
}

func SyncLogger() {
	_ = Log.Sync()
}
