package benchmark

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
)

// FormatTime. seconds as h:m:s without padding, truncated to whole seconds. zero is "0", unreached cells "-".
func FormatTime(secs float64) string {
	if secs < 0 {
		return "-"
	}
	total := int64(secs)
	if total == 0 {
		return "0"
	}
	return fmt.Sprintf("%d:%d:%d", total/3600, (total%3600)/60, total%60)
}

// CellIndex. (source, target) of flattened cell idx, the target index wraps every rowWidth cells
func CellIndex(idx, rowWidth int) (int, int) {
	return idx / rowWidth, idx % rowWidth
}

// SameLocations. optimization needs sources & targets to be the same points in the same order
func SameLocations(sources, targets []matrix.Location) bool {
	if len(sources) != len(targets) {
		return false
	}
	for i := range sources {
		if !sources[i].SameCoordinates(targets[i]) {
			return false
		}
	}
	return true
}

func formatCell(m *matrix.CostMatrix, idx int) string {
	i, j := CellIndex(idx, m.NumTargets())
	return fmt.Sprintf("%d,%d: Distance= %f Time= %s secs = %f", i, j, m.Distance(idx),
		FormatTime(m.Time(idx)), m.Time(idx))
}
