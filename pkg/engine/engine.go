package engine

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/spatialindex"
	"go.uber.org/zap"
)

const (
	// padding (km) of the r-tree leaf bounding boxes
	rtreeBoundingBoxRadius = 0.05
	snapCacheSize          = 1 << 16
)

// Engine. road graph, spatial index & location resolver shared by the cli & the http server
type Engine struct {
	graph    *datastructure.Graph
	rtree    *spatialindex.Rtree
	resolver *LocationResolver
	cfg      *config.Config
	logger   *zap.Logger
}

func (e *Engine) GetResolver() *LocationResolver {
	return e.resolver
}

func NewEngine(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	logger.Info("Starting matrix engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", cfg.GraphFile))
	graph, err := datastructure.ReadGraph(cfg.GraphFile)
	if err != nil {
		return nil, err
	}
	return NewEngineFromGraph(graph, cfg, logger)
}

func NewEngineFromGraph(graph *datastructure.Graph, cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	bb := graph.GetBoundingBox()
	minLat, minLon := bb.GetMinCoord()
	maxLat, maxLon := bb.GetMaxCoord()
	logger.Info("graph loaded", zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Float64s("boundingBox", []float64{minLat, minLon, maxLat, maxLon}))

	rt := spatialindex.NewRtree(graph)
	rt.Build(rtreeBoundingBoxRadius, logger)

	resolver, err := NewLocationResolver(rt, bb, cfg.SearchRadius, snapCacheSize)
	if err != nil {
		return nil, err
	}
	return &Engine{
		graph:    graph,
		rtree:    rt,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// NewDriver. benchmark driver over the engine graph, the default matrix backends if none given
func (e *Engine) NewDriver(backends ...matrix.Backend) *benchmark.Driver {
	return benchmark.NewDriver(e.logger, e.graph, e.resolver, e.cfg, backends...)
}
