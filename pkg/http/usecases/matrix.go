package usecases

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/benchmark"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"go.uber.org/zap"
)

var ErrTooFewLocations = errors.New("route optimization needs at least two locations")

type MatrixService struct {
	log    *zap.Logger
	engine MatrixEngine
}

func NewMatrixService(log *zap.Logger, engine MatrixEngine) *MatrixService {
	return &MatrixService{
		log:    log,
		engine: engine,
	}
}

// ComputeMatrix. run every matrix backend on a normalized request
func (ms *MatrixService) ComputeMatrix(req *matrix.MatrixRequest, iterations int, optimize bool) (*benchmark.Report, error) {
	return ms.engine.NewDriver().Run(req, benchmark.Config{
		Iterations: iterations,
		Optimize:   optimize,
	})
}

// OptimizeRoute. best visiting order of locs starting at locs[0] on the travel time matrix of the costmatrix backend
func (ms *MatrixService) OptimizeRoute(locs []matrix.Location, costingName string, open bool) (*benchmark.Tour, error) {
	if len(locs) < 2 {
		return nil, util.WrapErrorf(ErrTooFewLocations, util.ErrBadParamInput, "got %d locations", len(locs))
	}

	req := &matrix.MatrixRequest{Locations: locs, Costing: costingName}
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	report, err := ms.engine.NewDriver(matrix.NewCostMatrixSearch()).Run(req, benchmark.Config{
		Iterations: 1,
		Optimize:   true,
	})
	if err != nil {
		return nil, err
	}

	br := report.Backends[0]
	if open {
		return br.OpenPath, nil
	}
	return br.Tour, nil
}
