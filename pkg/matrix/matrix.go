package matrix

import (
	"math"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
)

// CostMatrix. row-major times (seconds) & distances (meter), row = source, column = target.
// cells without a path within the distance ceiling hold pkg.UNREACHED in both slices.
type CostMatrix struct {
	numSources int
	numTargets int
	times      []float64
	distances  []float64
}

func NewCostMatrix(numSources, numTargets int) *CostMatrix {
	n := numSources * numTargets
	m := &CostMatrix{
		numSources: numSources,
		numTargets: numTargets,
		times:      make([]float64, n),
		distances:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		m.times[i] = pkg.UNREACHED
		m.distances[i] = pkg.UNREACHED
	}
	return m
}

func (m *CostMatrix) Len() int {
	return len(m.times)
}

func (m *CostMatrix) NumSources() int {
	return m.numSources
}

func (m *CostMatrix) NumTargets() int {
	return m.numTargets
}

func (m *CostMatrix) Times() []float64 {
	return m.times
}

func (m *CostMatrix) Distances() []float64 {
	return m.distances
}

func (m *CostMatrix) Time(idx int) float64 {
	return m.times[idx]
}

func (m *CostMatrix) Distance(idx int) float64 {
	return m.distances[idx]
}

func (m *CostMatrix) Reachable(idx int) bool {
	return m.times[idx] != pkg.UNREACHED
}

func (m *CostMatrix) Index(source, target int) int {
	return source*m.numTargets + target
}

// Cell. (source, target) of a flattened index
func (m *CostMatrix) Cell(idx int) (int, int) {
	return idx / m.numTargets, idx % m.numTargets
}

func (m *CostMatrix) set(source, target int, secs, meters float64) {
	idx := m.Index(source, target)
	m.times[idx] = secs
	m.distances[idx] = meters
}

// CountTimeDifferences. number of cells whose times differ by more than tolerance seconds,
// a cell reachable in only one of the matrices always counts. -1 if the shapes differ.
func (m *CostMatrix) CountTimeDifferences(o *CostMatrix, tolerance float64) int {
	if m.numSources != o.numSources || m.numTargets != o.numTargets {
		return -1
	}
	count := 0
	for i := range m.times {
		if m.Reachable(i) != o.Reachable(i) || math.Abs(m.times[i]-o.times[i]) > tolerance {
			count++
		}
	}
	return count
}
