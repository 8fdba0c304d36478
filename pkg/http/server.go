package http

import (
	"context"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	http_router "github.com/lintang-b-s/navigatorx-matrix/pkg/http/router"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/navigatorx-matrix/pkg/http/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. run the api server, blocks until ctx is canceled or the server fails
func (s *Server) Use(
	ctx context.Context,
	httpConfig config.HTTPConfig,

	useRateLimit bool,
	matrixService controllers.MatrixService,
) error {
	serverConfig := http_server.Config{
		Port:      httpConfig.Port,
		Timeout:   httpConfig.Timeout,
		RateLimit: httpConfig.RateLimit,
	}

	server := http_router.NewAPI(s.Log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gCtx, serverConfig, useRateLimit, matrixService)
	})
	return g.Wait()
}
