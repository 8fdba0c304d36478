package costing

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
)

// Edge. read-only view of a graph edge, implemented by *datastructure.OutEdge & *datastructure.InEdge
type Edge interface {
	GetLength() float64
	GetEdgeSpeed() float64
	GetHighwayType() pkg.OsmHighwayType
	IsAccessible(mask datastructure.AccessMask) bool
	GetLevel() uint8
}

// Cost of traversing an edge. Secs = travel time in seconds, Meters = length in meter
type Cost struct {
	Secs   float64
	Meters float64
}

func (c Cost) Add(o Cost) Cost {
	return Cost{Secs: c.Secs + o.Secs, Meters: c.Meters + o.Meters}
}

// Options. per-mode cost options taken from the request
type Options struct {
	// km/h, 0 means the mode default
	Speed float64 `json:"speed,omitempty" validate:"omitempty,gt=0,lte=200"`
	// user supplied hierarchy limits, nil when the request has none
	HierarchyLimits *HierarchyLimits `json:"hierarchy_limits,omitempty"`
}

type CostingMethod interface {
	Name() string
	Mode() TravelMode
	Options() Options
	GetHierarchyLimits() HierarchyLimits
	// UseHierarchyLimits. false if searches of this mode must never skip hierarchy levels
	UseHierarchyLimits() bool
	// WithHierarchyLimits. copy of the method with other hierarchy limits
	WithHierarchyLimits(limits HierarchyLimits) CostingMethod
	Allowed(e Edge) bool
	EdgeCost(e Edge) Cost
}

// ModeCosting. costing method of every travel mode, indexed by TravelMode
type ModeCosting [NUM_TRAVEL_MODES]CostingMethod

const (
	defaultDrivingSpeed = 30.0 // km/h, edges with unknown speed
	cyclingSpeed        = 20.0
	walkingSpeed        = 5.1
)

type dynamicCost struct {
	mode               TravelMode
	options            Options
	hierarchyLimits    HierarchyLimits
	useHierarchyLimits bool
	maxSpeed           float64 // km/h, 0 = edge speed is used as is
}

func newDynamicCost(mode TravelMode, options Options) *dynamicCost {
	dc := &dynamicCost{
		mode:               mode,
		options:            options,
		hierarchyLimits:    UnlimitedHierarchyLimits(),
		useHierarchyLimits: mode != PEDESTRIAN,
	}

	switch mode {
	case BICYCLE:
		dc.maxSpeed = cyclingSpeed
	case PEDESTRIAN:
		dc.maxSpeed = walkingSpeed
	}
	if options.Speed > 0 {
		dc.maxSpeed = options.Speed
	}
	if options.HierarchyLimits != nil {
		dc.hierarchyLimits = *options.HierarchyLimits
	}
	return dc
}

func (dc *dynamicCost) Name() string {
	return dc.mode.String()
}

func (dc *dynamicCost) Mode() TravelMode {
	return dc.mode
}

func (dc *dynamicCost) Options() Options {
	return dc.options
}

func (dc *dynamicCost) GetHierarchyLimits() HierarchyLimits {
	return dc.hierarchyLimits
}

func (dc *dynamicCost) UseHierarchyLimits() bool {
	return dc.useHierarchyLimits
}

func (dc *dynamicCost) WithHierarchyLimits(limits HierarchyLimits) CostingMethod {
	cp := *dc
	cp.hierarchyLimits = limits
	return &cp
}

func (dc *dynamicCost) Allowed(e Edge) bool {
	return e.IsAccessible(dc.mode.AccessMask())
}

// speed in km/h the mode travels on e
func (dc *dynamicCost) speed(e Edge) float64 {
	speed := e.GetEdgeSpeed()
	if speed <= 0 {
		speed = defaultDrivingSpeed
	}
	if dc.mode == PEDESTRIAN || (dc.maxSpeed > 0 && speed > dc.maxSpeed) {
		return dc.maxSpeed
	}
	return speed
}

func (dc *dynamicCost) EdgeCost(e Edge) Cost {
	meters := e.GetLength()
	return Cost{
		Secs:   meters / (dc.speed(e) / 3.6),
		Meters: meters,
	}
}

// RequestOptions. costing part of a matrix request
type RequestOptions struct {
	Costing        string
	CostingOptions map[string]Options
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// CreateModeCosting. build the costing methods of every mode, the requested one with its request options.
// returns the travel mode of the requested costing.
func (f *Factory) CreateModeCosting(opts RequestOptions) (ModeCosting, TravelMode, error) {
	var modeCosting ModeCosting
	mode, err := ParseTravelMode(opts.Costing)
	if err != nil {
		return modeCosting, mode, err
	}

	for m := TravelMode(0); m < NUM_TRAVEL_MODES; m++ {
		options := Options{}
		if m == mode {
			options = opts.CostingOptions[m.String()]
		}
		modeCosting[m] = newDynamicCost(m, options)
	}
	return modeCosting, mode, nil
}
