package usecases

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/engine"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// square block: a(nw) -- b(ne) -- c(se) -- d(sw) -- a, all residential
func newTestService(t *testing.T) *MatrixService {
	gb := datastructure.NewGraphBuilder()
	a := gb.AddVertex(-7.550, 110.780, 1)
	b := gb.AddVertex(-7.550, 110.785, 2)
	c := gb.AddVertex(-7.555, 110.785, 3)
	d := gb.AddVertex(-7.555, 110.780, 4)
	gb.AddBidirectionalEdge(a, b, -1, 30, pkg.RESIDENTIAL, datastructure.ACCESS_ALL)
	gb.AddBidirectionalEdge(b, c, -1, 30, pkg.RESIDENTIAL, datastructure.ACCESS_ALL)
	gb.AddBidirectionalEdge(c, d, -1, 30, pkg.RESIDENTIAL, datastructure.ACCESS_ALL)
	gb.AddBidirectionalEdge(d, a, -1, 30, pkg.RESIDENTIAL, datastructure.ACCESS_ALL)

	cfg := &config.Config{
		SearchRadius:       0.1,
		CostLimits:         config.NewCostLimitTable(map[string]float64{"auto": 4000000}, costing.KnownModes()),
		OptimizerMaxPasses: 10,
	}
	e, err := engine.NewEngineFromGraph(gb.Build(), cfg, zap.NewNop())
	require.NoError(t, err)
	return NewMatrixService(zap.NewNop(), e)
}

func corners() []matrix.Location {
	return []matrix.Location{
		matrix.NewLocation(-7.5501, 110.7801), // a
		matrix.NewLocation(-7.5549, 110.7849), // c
		matrix.NewLocation(-7.5501, 110.7849), // b
		matrix.NewLocation(-7.5549, 110.7801), // d
	}
}

func TestComputeMatrix(t *testing.T) {
	svc := newTestService(t)

	req := &matrix.MatrixRequest{Locations: corners(), Costing: "auto"}
	require.NoError(t, req.Normalize())

	report, err := svc.ComputeMatrix(req, 2, false)
	require.NoError(t, err)
	require.Len(t, report.Backends, 2)
	assert.Equal(t, 0, report.TimeDifferences)

	for _, br := range report.Backends {
		assert.Equal(t, 16, br.Matrix.Len())
		for idx := 0; idx < br.Matrix.Len(); idx++ {
			assert.True(t, br.Matrix.Reachable(idx))
		}
	}
}

func TestOptimizeRoute(t *testing.T) {
	svc := newTestService(t)

	tour, err := svc.OptimizeRoute(corners(), "auto", false)
	require.NoError(t, err)
	// walking around the block visits the diagonal corner third
	require.Len(t, tour.Order, 4)
	assert.Equal(t, 0, tour.Order[0])
	assert.Equal(t, 1, tour.Order[2])

	open, err := svc.OptimizeRoute(corners(), "auto", true)
	require.NoError(t, err)
	assert.Equal(t, 0, open.Order[0])
	assert.Equal(t, 1, open.Order[2])
	assert.Less(t, open.Cost, tour.Cost)
}

func TestOptimizeRouteErrors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.OptimizeRoute(corners()[:1], "auto", false)
	assert.True(t, errors.Is(err, ErrTooFewLocations))
	assert.True(t, errors.Is(err, util.ErrBadParamInput))

	_, err = svc.OptimizeRoute(corners(), "boat", false)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}
