package benchmark

import (
	"strconv"
	"time"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/config"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/geo"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/optimizer"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"go.uber.org/zap"
)

// cells whose times differ by more than this many seconds between backends are reported
const crossCheckTolerance = 1.0

type LocationResolver interface {
	Resolve(locs []matrix.Location, mode costing.TravelMode) ([]matrix.PathLocation, error)
}

type Config struct {
	Iterations int
	Optimize   bool
	LogDetails bool
}

type Tour struct {
	Order    []int         `json:"order"`
	Cost     float64       `json:"cost"`
	Polyline string        `json:"polyline"`
	Took     time.Duration `json:"took"`
}

type BackendReport struct {
	Name           string             `json:"name"`
	Iterations     int                `json:"iterations"`
	Total          time.Duration      `json:"total"`
	AverageSeconds float64            `json:"average_seconds"`
	Matrix         *matrix.CostMatrix `json:"-"`
	// closed tour from source 0 & open path from source 0, nil unless optimization ran
	Tour     *Tour `json:"tour,omitempty"`
	OpenPath *Tour `json:"open_path,omitempty"`
}

type Report struct {
	Costing            string          `json:"costing"`
	MaxMatrixDistance  float64         `json:"max_matrix_distance"`
	LocationProcessing time.Duration   `json:"location_processing"`
	Optimized          bool            `json:"optimized"`
	Backends           []BackendReport `json:"backends"`
	// cells whose times differ between the first two backends, -1 with fewer backends
	TimeDifferences int `json:"time_differences"`
}

type Driver struct {
	log       *zap.Logger
	graph     matrix.Graph
	resolver  LocationResolver
	factory   *costing.Factory
	cfg       *config.Config
	optimizer *optimizer.Optimizer
	backends  []matrix.Backend
	now       func() time.Time
}

func DefaultBackends() []matrix.Backend {
	return []matrix.Backend{matrix.NewCostMatrixSearch(), matrix.NewTimeDistanceMatrix()}
}

func NewDriver(log *zap.Logger, graph matrix.Graph, resolver LocationResolver, cfg *config.Config,
	backends ...matrix.Backend) *Driver {
	if len(backends) == 0 {
		backends = DefaultBackends()
	}
	return &Driver{
		log:       log,
		graph:     graph,
		resolver:  resolver,
		factory:   costing.NewFactory(),
		cfg:       cfg,
		optimizer: optimizer.New(optimizer.Options{MaxPasses: cfg.OptimizerMaxPasses}),
		backends:  backends,
		now:       time.Now,
	}
}

// Run. compute the matrix of req with every backend runCfg.Iterations times, report the average compute time
// & optionally the optimized visiting order of the sources.
// configuration errors abort before any backend runs.
func (d *Driver) Run(req *matrix.MatrixRequest, runCfg Config) (*Report, error) {
	if runCfg.Iterations < 1 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "iterations must be at least 1, got %d",
			runCfg.Iterations)
	}

	modeCosting, mode, err := d.factory.CreateModeCosting(req.RequestOptions())
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid costing %q", req.Costing)
	}
	d.log.Info("routetype: " + req.Costing)

	maxDistance, err := d.cfg.CostLimits.MaxMatrixDistance(req.Costing, d.log)
	if err != nil {
		return nil, err
	}

	// hierarchy limits of every backend are checked before the first one runs
	backendCostings := make([]costing.ModeCosting, len(d.backends))
	for b, backend := range d.backends {
		method := modeCosting[mode]
		limits, err := costing.ValidateHierarchyLimits(method.GetHierarchyLimits(), method,
			d.cfg.HierarchyLimitsOf(backend.Name()), d.cfg.StrictHierarchyLimits)
		if err != nil {
			return nil, err
		}
		backendCostings[b] = modeCosting
		backendCostings[b][mode] = method.WithHierarchyLimits(limits)
	}

	start := d.now()
	sources, err := d.resolver.Resolve(req.Sources, mode)
	if err != nil {
		return nil, err
	}
	targets, err := d.resolver.Resolve(req.Targets, mode)
	if err != nil {
		return nil, err
	}
	report := &Report{
		Costing:            req.Costing,
		MaxMatrixDistance:  maxDistance,
		LocationProcessing: d.now().Sub(start),
		TimeDifferences:    -1,
	}
	d.log.Info("Location Processing took " + strconv.FormatInt(report.LocationProcessing.Milliseconds(), 10) + " ms")

	report.Optimized = runCfg.Optimize
	if runCfg.Optimize && !SameLocations(req.Sources, req.Targets) {
		d.log.Warn("Targets differ from sources, skipping optimization...")
		report.Optimized = false
	}
	if report.Optimized {
		d.log.Info("Find the optimal path")
	}

	request := matrix.NewRequest(sources, targets, req.Costing)
	for b, backend := range d.backends {
		backendReport, err := d.runBackend(backend, request, backendCostings[b], mode, maxDistance, runCfg.Iterations)
		if err != nil {
			return nil, err
		}

		if err := d.logResults(backendReport, request, report.Optimized, runCfg.LogDetails); err != nil {
			return nil, err
		}
		report.Backends = append(report.Backends, *backendReport)
	}

	if len(report.Backends) >= 2 {
		report.TimeDifferences = report.Backends[0].Matrix.CountTimeDifferences(report.Backends[1].Matrix,
			crossCheckTolerance)
		d.log.Info("cross-check of matrix backends",
			zap.String("first", report.Backends[0].Name), zap.String("second", report.Backends[1].Name),
			zap.Int("cells_with_different_times", report.TimeDifferences))
	}
	return report, nil
}

// runBackend. the clock starts right before the iterations of this backend, every iteration gets a new matrix
func (d *Driver) runBackend(backend matrix.Backend, request *matrix.Request, modeCosting costing.ModeCosting,
	mode costing.TravelMode, maxDistance float64, iterations int) (*BackendReport, error) {
	var (
		result *matrix.CostMatrix
		err    error
	)

	start := d.now()
	for n := 0; n < iterations; n++ {
		iterStart := d.now()
		result, err = backend.SourceToTarget(request, d.graph, modeCosting, mode, maxDistance)
		if err != nil {
			return nil, err
		}
		metrics.MatrixComputeDuration.WithLabelValues(backend.Name(), request.Costing).
			Observe(d.now().Sub(iterStart).Seconds())
	}
	total := d.now().Sub(start)

	reachable := 0
	for idx := 0; idx < result.Len(); idx++ {
		if result.Reachable(idx) {
			reachable++
		}
	}
	metrics.MatrixCells.WithLabelValues(backend.Name(), "true").Add(float64(reachable))
	metrics.MatrixCells.WithLabelValues(backend.Name(), "false").Add(float64(result.Len() - reachable))

	br := &BackendReport{
		Name:           backend.Name(),
		Iterations:     iterations,
		Total:          total,
		AverageSeconds: total.Seconds() / float64(iterations),
		Matrix:         result,
	}
	d.log.Info(backend.Name()+" average time to compute: "+strconv.FormatFloat(br.AverageSeconds, 'f', 6, 64)+" sec",
		zap.Int("iterations", iterations), zap.Duration("total", total))
	return br, nil
}

func (d *Driver) logResults(br *BackendReport, request *matrix.Request, optimize, logDetails bool) error {
	m := br.Matrix
	if optimize {
		tour, err := d.optimize(m, request, true)
		if err != nil {
			return err
		}
		openPath, err := d.optimize(m, request, false)
		if err != nil {
			return err
		}
		br.Tour, br.OpenPath = tour, openPath

		d.log.Info("Optimization took "+strconv.FormatInt(tour.Took.Milliseconds(), 10)+" ms",
			zap.Ints("tour", tour.Order), zap.Float64("tour_cost", tour.Cost),
			zap.Ints("open_path", openPath.Order), zap.Float64("open_path_cost", openPath.Cost))
		d.log.Info("tour geometry", zap.String("polyline", tour.Polyline))
	}

	if logDetails {
		for idx := 0; idx < m.Len(); idx++ {
			d.log.Info(formatCell(m, idx))
		}
	}
	return nil
}

func (d *Driver) optimize(m *matrix.CostMatrix, request *matrix.Request, closed bool) (*Tour, error) {
	n := len(request.Sources)
	start := d.now()
	var (
		order []int
		err   error
	)
	if closed {
		order, err = d.optimizer.Solve(n, m.Times())
	} else {
		order, err = d.optimizer.SolveOpen(n, m.Times())
	}
	if err != nil {
		return nil, err
	}
	took := d.now().Sub(start)
	metrics.OptimizationDuration.Observe(took.Seconds())

	coords := make([]geo.Coordinate, 0, len(order)+1)
	for _, i := range order {
		coords = append(coords, request.Sources[i].Coordinate())
	}
	if closed && len(order) > 0 {
		coords = append(coords, request.Sources[order[0]].Coordinate())
	}

	return &Tour{
		Order:    order,
		Cost:     optimizer.TourCost(n, m.Times(), order, closed),
		Polyline: geo.PolylineFromCoords(coords),
		Took:     took,
	}, nil
}
