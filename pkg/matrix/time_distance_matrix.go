package matrix

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	da "github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
)

// TimeDistanceMatrix. one forward dijkstra per source that stops once every target vertex is settled.
type TimeDistanceMatrix struct{}

func NewTimeDistanceMatrix() *TimeDistanceMatrix {
	return &TimeDistanceMatrix{}
}

func (tdm *TimeDistanceMatrix) Name() string {
	return costing.PROFILE_TIMEDISTANCEMATRIX
}

func (tdm *TimeDistanceMatrix) SourceToTarget(req *Request, graph Graph, modeCosting costing.ModeCosting,
	mode costing.TravelMode, maxMatrixDistance float64) (*CostMatrix, error) {
	method, err := checkRequest(req, graph, modeCosting, mode)
	if err != nil {
		return nil, err
	}

	result := NewCostMatrix(len(req.Sources), len(req.Targets))

	// several targets can share a vertex
	targetColumns := make(map[da.Index][]int, len(req.Targets))
	for j, t := range req.Targets {
		targetColumns[t.Vertex] = append(targetColumns[t.Vertex], j)
	}

	for i, source := range req.Sources {
		s := newSearch(graph, method, maxMatrixDistance, false, source.Vertex)
		remaining := len(targetColumns)
		for remaining > 0 && !s.isEmpty() {
			u, cost, ok := s.settleNext()
			if !ok {
				break
			}
			columns, isTarget := targetColumns[u]
			if !isTarget {
				continue
			}
			for _, j := range columns {
				result.set(i, j, cost.Secs, cost.Meters)
			}
			remaining--
		}
	}
	return result, nil
}
