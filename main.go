package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/groundlog/borelog-viewer/config"
	"github.com/groundlog/borelog-viewer/db"
	httpserver "github.com/groundlog/borelog-viewer/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	setupLogging(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.Open(ctx, cfg)
	if err != nil {
		zap.L().Fatal("store error", zap.Error(err))
	}
	defer store.Close()

	srv, err := httpserver.New(cfg, store)
	if err != nil {
		zap.L().Fatal("server setup error", zap.Error(err))
	}
	zap.L().Info("borelog viewer listening",
		zap.String("addr", cfg.ListenAddr()),
		zap.String("provider", cfg.Provider))

	if err := srv.Run(ctx); err != nil {
		zap.L().Fatal("server error", zap.Error(err))
	}
}

// setupLogging installs the global zap logger. The level was validated by
// config.Load, so a parse failure here only means the production default.
func setupLogging(level string) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Sampling = nil
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		loggerConfig.Level = zap.NewAtomicLevelAt(lvl)
	}
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	loggerConfig.EncoderConfig.TimeKey = "ts"
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}
	logger, _ := loggerConfig.Build()
	zap.ReplaceGlobals(logger)
}
