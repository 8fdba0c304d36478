package config

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"go.uber.org/zap"
)

const DefaultMaxMatrixDistance = pkg.DEFAULT_MAX_MATRIX_DISTANCE

var ErrMissingMaxMatrixDistance = errors.New("missing max_matrix_distance configuration")

// CostLimitTable. costing mode -> max total matrix distance (meter). read-only after construction.
type CostLimitTable struct {
	limits map[string]float64
}

// NewCostLimitTable. keep only entries whose key is a known costing mode
func NewCostLimitTable(serviceLimits map[string]float64, knownModes []string) *CostLimitTable {
	table := &CostLimitTable{limits: make(map[string]float64, len(knownModes))}
	for _, mode := range knownModes {
		if dist, ok := serviceLimits[mode]; ok {
			table.limits[mode] = dist
		}
	}
	return table
}

func (t *CostLimitTable) Len() int {
	return len(t.limits)
}

// MaxMatrixDistance. distance ceiling of a costing mode.
// an empty table is a configuration error, a mode missing from the table falls back to DefaultMaxMatrixDistance.
func (t *CostLimitTable) MaxMatrixDistance(mode string, log *zap.Logger) (float64, error) {
	if len(t.limits) == 0 {
		return 0, util.WrapErrorf(ErrMissingMaxMatrixDistance, util.ErrConfiguration,
			"no service_limits.<mode>.max_matrix_distance configured")
	}

	dist, ok := t.limits[mode]
	if !ok {
		log.Warn("could not find max_matrix_distance for costing, using 4000 km",
			zap.String("costing", mode), zap.Float64("max_matrix_distance", DefaultMaxMatrixDistance))
		return DefaultMaxMatrixDistance, nil
	}
	return dist, nil
}
