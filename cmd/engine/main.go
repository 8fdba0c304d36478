package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/engine"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/http"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/http/usecases"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/logger"
	"go.uber.org/zap"
)

var (
	configFile   = flag.String("config", "", "configuration file, ./data/config.(json|yaml) if empty")
	useRateLimit = flag.Bool("rate_limit", true, "limit requests per second to http.rate_limit")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	// environment variables (e.g. HTTP_PORT) override the config file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", zap.Error(err))
	}

	cfg, err := config.Load(*configFile, "")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	matrixEngine, err := engine.NewEngine(cfg, logger)
	if err != nil {
		logger.Fatal("failed to start matrix engine", zap.Error(err))
	}

	matrixService := usecases.NewMatrixService(logger, matrixEngine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := http.NewServer(logger)
	if err := api.Use(ctx, cfg.HTTP, *useRateLimit, matrixService); err != nil && ctx.Err() == nil {
		logger.Fatal("api server stopped", zap.Error(err))
	}

	logger.Info("Navigatorx Matrix Server Stopped")
}
