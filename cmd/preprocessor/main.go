package main

import (
	"flag"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/logger"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	configFile  = flag.String("config", "", "configuration file, ./data/config.(json|yaml) if empty")
	useMaxSpeed = flag.Bool("use_maxspeed", true, "use the maxspeed tag of osm ways as edge speed")
	largestSCC  = flag.Bool("largest_scc", true, "drop vertices outside the largest strongly connected component of every travel mode")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(*configFile, "")
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	osmParser := osmparser.NewOSMParser(logger, *useMaxSpeed)
	graph, err := osmParser.Parse(cfg.OsmFile)
	if err != nil {
		logger.Fatal("failed to parse osm file", zap.String("osmFile", cfg.OsmFile), zap.Error(err))
	}

	if *largestSCC {
		numVertices := graph.NumberOfVertices()
		graph = graph.PruneToLargestSCC(datastructure.ACCESS_AUTO, datastructure.ACCESS_BICYCLE,
			datastructure.ACCESS_PEDESTRIAN)
		logger.Info("pruned road islands", zap.Int("removed_vertices", numVertices-graph.NumberOfVertices()))
	}

	if err := graph.WriteGraph(cfg.GraphFile); err != nil {
		logger.Fatal("failed to write graph", zap.String("graphFile", cfg.GraphFile), zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. graph written to %s (%d vertices, %d edges)",
		cfg.GraphFile, graph.NumberOfVertices(), graph.NumberOfEdges())
}
