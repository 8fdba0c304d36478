package costing

import (
	"errors"
	"math"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
)

const (
	UnlimitedTransitions    uint32  = math.MaxUint32
	MaxExpandWithinDistance float64 = 1e8 // meter

	PROFILE_COSTMATRIX         = "costmatrix"
	PROFILE_TIMEDISTANCEMATRIX = "timedistancematrix"
)

var ErrHierarchyLimitsExceeded = errors.New("hierarchy limits exceed the allowed maximum")

// LevelLimits. how far a search keeps expanding edges of one hierarchy level
type LevelLimits struct {
	// number of transitions from this level up to a more important level a search may take
	MaxUpTransitions uint32 `json:"max_up_transitions"`
	// edges of this level are only expanded while the path distance (meter) stays within it
	ExpandWithinDistance float64 `json:"expand_within_distance"`
}

// HierarchyLimits. indexed by hierarchy level, 0 = highway
type HierarchyLimits [pkg.NUM_HIERARCHY_LEVELS]LevelLimits

func UnlimitedHierarchyLimits() HierarchyLimits {
	var limits HierarchyLimits
	for l := range limits {
		limits[l] = LevelLimits{MaxUpTransitions: UnlimitedTransitions, ExpandWithinDistance: MaxExpandWithinDistance}
	}
	return limits
}

// StopExpanding. true if edges of level must not be expanded at path distance dist
func (h HierarchyLimits) StopExpanding(level uint8, dist float64) bool {
	return dist > h[level].ExpandWithinDistance
}

func (h HierarchyLimits) IsUnlimited() bool {
	return h == UnlimitedHierarchyLimits()
}

// HierarchyLimitsConfig. allowed maxima & defaults of the hierarchy limits of one search profile
type HierarchyLimitsConfig struct {
	MaxAllowedUpTransitions     [pkg.NUM_HIERARCHY_LEVELS]uint32
	MaxExpandWithinDistance     [pkg.NUM_HIERARCHY_LEVELS]float64
	DefaultUpTransitions        [pkg.NUM_HIERARCHY_LEVELS]uint32
	DefaultExpandWithinDistance [pkg.NUM_HIERARCHY_LEVELS]float64
}

// DefaultHierarchyLimitsConfig. built-in profile values, used for keys missing from the config file
func DefaultHierarchyLimitsConfig(profile string) HierarchyLimitsConfig {
	if profile == PROFILE_COSTMATRIX {
		return HierarchyLimitsConfig{
			MaxAllowedUpTransitions:     [pkg.NUM_HIERARCHY_LEVELS]uint32{UnlimitedTransitions, 400, 100},
			MaxExpandWithinDistance:     [pkg.NUM_HIERARCHY_LEVELS]float64{MaxExpandWithinDistance, 100000, 5000},
			DefaultUpTransitions:        [pkg.NUM_HIERARCHY_LEVELS]uint32{UnlimitedTransitions, 400, 100},
			DefaultExpandWithinDistance: [pkg.NUM_HIERARCHY_LEVELS]float64{MaxExpandWithinDistance, 100000, 5000},
		}
	}

	cfg := HierarchyLimitsConfig{}
	for l := 0; l < pkg.NUM_HIERARCHY_LEVELS; l++ {
		cfg.MaxAllowedUpTransitions[l] = UnlimitedTransitions
		cfg.MaxExpandWithinDistance[l] = MaxExpandWithinDistance
		cfg.DefaultUpTransitions[l] = UnlimitedTransitions
		cfg.DefaultExpandWithinDistance[l] = MaxExpandWithinDistance
	}
	return cfg
}

func (cfg HierarchyLimitsConfig) Defaults() HierarchyLimits {
	var limits HierarchyLimits
	for l := range limits {
		limits[l] = LevelLimits{
			MaxUpTransitions:     cfg.DefaultUpTransitions[l],
			ExpandWithinDistance: cfg.DefaultExpandWithinDistance[l],
		}
	}
	return limits
}

// ValidateHierarchyLimits. check the hierarchy limits of a costing method against a search profile.
// returns the limits the search must use:
//   - unlimited on every level if the method never skips hierarchy levels
//   - profile defaults if the request carries no hierarchy limits
//   - limits clamped to the profile maxima otherwise. with strict, exceeding a maximum is an error instead.
//
// the method is not modified, apply the result with method.WithHierarchyLimits.
func ValidateHierarchyLimits(limits HierarchyLimits, method CostingMethod, profile HierarchyLimitsConfig,
	strict bool) (HierarchyLimits, error) {
	if !method.UseHierarchyLimits() {
		return UnlimitedHierarchyLimits(), nil
	}

	if method.Options().HierarchyLimits == nil {
		return profile.Defaults(), nil
	}

	adjusted := limits
	for l := range adjusted {
		maxUp := profile.MaxAllowedUpTransitions[l]
		maxDist := profile.MaxExpandWithinDistance[l]
		if adjusted[l].MaxUpTransitions <= maxUp && adjusted[l].ExpandWithinDistance <= maxDist {
			continue
		}

		if strict {
			return limits, util.WrapErrorf(ErrHierarchyLimitsExceeded, util.ErrConfiguration,
				"costing %s level %d: max_up_transitions %d (allowed %d), expand_within_distance %.1f (allowed %.1f)",
				method.Name(), l, adjusted[l].MaxUpTransitions, maxUp, adjusted[l].ExpandWithinDistance, maxDist)
		}
		adjusted[l].MaxUpTransitions = util.MinG(adjusted[l].MaxUpTransitions, maxUp)
		adjusted[l].ExpandWithinDistance = util.MinG(adjusted[l].ExpandWithinDistance, maxDist)
	}
	return adjusted, nil
}
