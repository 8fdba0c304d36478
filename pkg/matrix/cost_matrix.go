package matrix

import (
	"math"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	da "github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
)

type bucketEntry struct {
	target int
	cost   costing.Cost
}

// CostMatrixSearch. bucket based many-to-many search.
// a backward search from every target leaves its settled labels in per-vertex buckets,
// then a forward search from every source meets those buckets on each settled vertex.
// both directions use the hierarchy limits of the costing method.
type CostMatrixSearch struct{}

func NewCostMatrixSearch() *CostMatrixSearch {
	return &CostMatrixSearch{}
}

func (cm *CostMatrixSearch) Name() string {
	return costing.PROFILE_COSTMATRIX
}

func (cm *CostMatrixSearch) SourceToTarget(req *Request, graph Graph, modeCosting costing.ModeCosting,
	mode costing.TravelMode, maxMatrixDistance float64) (*CostMatrix, error) {
	method, err := checkRequest(req, graph, modeCosting, mode)
	if err != nil {
		return nil, err
	}

	buckets := cm.backwardSearches(req, graph, method, maxMatrixDistance)

	result := NewCostMatrix(len(req.Sources), len(req.Targets))
	for i, source := range req.Sources {
		best := cm.forwardSearch(source.Vertex, len(req.Targets), buckets, graph, method, maxMatrixDistance)
		for j, c := range best {
			if c.Secs < pkg.INF_WEIGHT {
				result.set(i, j, c.Secs, c.Meters)
			}
		}
	}
	return result, nil
}

func (cm *CostMatrixSearch) backwardSearches(req *Request, graph Graph, method costing.CostingMethod,
	maxMatrixDistance float64) map[da.Index][]bucketEntry {
	buckets := make(map[da.Index][]bucketEntry)
	for j, target := range req.Targets {
		s := newSearch(graph, method, maxMatrixDistance, true, target.Vertex)
		for !s.isEmpty() {
			v, cost, ok := s.settleNext()
			if !ok {
				break
			}
			buckets[v] = append(buckets[v], bucketEntry{target: j, cost: cost})
		}
	}
	return buckets
}

// forwardSearch. best connection from source to every target, Secs = INF_WEIGHT if none.
// stops once the frontier cost reaches the best connection of every target.
func (cm *CostMatrixSearch) forwardSearch(source da.Index, numTargets int, buckets map[da.Index][]bucketEntry,
	graph Graph, method costing.CostingMethod, maxMatrixDistance float64) []costing.Cost {
	best := make([]costing.Cost, numTargets)
	for j := range best {
		best[j] = costing.Cost{Secs: pkg.INF_WEIGHT, Meters: pkg.INF_WEIGHT}
	}
	worstBest := pkg.INF_WEIGHT

	s := newSearch(graph, method, maxMatrixDistance, false, source)
	for !s.isEmpty() && s.minRank() < worstBest {
		u, cost, ok := s.settleNext()
		if !ok {
			break
		}

		improved := false
		for _, entry := range buckets[u] {
			total := cost.Add(entry.cost)
			if total.Meters > maxMatrixDistance || total.Secs >= best[entry.target].Secs {
				continue
			}
			best[entry.target] = total
			improved = true
		}

		if improved {
			worstBest = 0
			for _, c := range best {
				worstBest = math.Max(worstBest, c.Secs)
			}
		}
	}
	return best
}
