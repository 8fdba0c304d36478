package matrix

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	da "github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
)

type vertexInfo struct {
	cost    costing.Cost
	level   uint8 // hierarchy level of the edge the label arrived by
	settled bool
	node    *da.PriorityQueueNode[da.Index]
}

// search. label-setting dijkstra on travel time from one origin, over outEdges (forward) or inEdges (backward).
// edges of a hierarchy level are skipped once the path distance passes that level's expand distance,
// up transitions are counted per level and skipped once the level runs out of them.
type search struct {
	graph       Graph
	method      costing.CostingMethod
	limits      costing.HierarchyLimits
	maxDistance float64
	backward    bool

	info          map[da.Index]*vertexInfo
	pq            *da.MinHeap[da.Index]
	upTransitions [pkg.NUM_HIERARCHY_LEVELS]uint32
}

func newSearch(graph Graph, method costing.CostingMethod, maxDistance float64, backward bool,
	origin da.Index) *search {
	s := &search{
		graph:       graph,
		method:      method,
		limits:      method.GetHierarchyLimits(),
		maxDistance: maxDistance,
		backward:    backward,
		info:        make(map[da.Index]*vertexInfo),
		pq:          da.NewFourAryHeap[da.Index](),
	}

	node := da.NewPriorityQueueNode(0, origin)
	s.info[origin] = &vertexInfo{node: node}
	s.pq.Insert(node)
	return s
}

func (s *search) minRank() float64 {
	return s.pq.GetMinrank()
}

func (s *search) isEmpty() bool {
	return s.pq.IsEmpty()
}

// settleNext. pop the closest unsettled vertex & expand its edges
func (s *search) settleNext() (da.Index, costing.Cost, bool) {
	node, err := s.pq.ExtractMin()
	if err != nil {
		return da.INVALID_VERTEX_ID, costing.Cost{}, false
	}
	u := node.GetItem()
	uInfo := s.info[u]
	uInfo.settled = true
	uInfo.node = nil

	if s.backward {
		s.graph.ForInEdgesOf(u, func(e *da.InEdge) {
			s.relax(uInfo, e, e.GetTail())
		})
	} else {
		s.graph.ForOutEdgesOf(u, func(e *da.OutEdge) {
			s.relax(uInfo, e, e.GetHead())
		})
	}
	return u, uInfo.cost, true
}

func (s *search) relax(uInfo *vertexInfo, e costing.Edge, v da.Index) {
	if !s.method.Allowed(e) {
		return
	}

	level := e.GetLevel()
	if s.limits.StopExpanding(level, uInfo.cost.Meters) {
		return
	}

	upTransition := level < uInfo.level
	if upTransition && s.upTransitions[uInfo.level] >= s.limits[uInfo.level].MaxUpTransitions {
		return
	}

	cost := uInfo.cost.Add(s.method.EdgeCost(e))
	if cost.Meters > s.maxDistance {
		return
	}

	vInfo, ok := s.info[v]
	switch {
	case !ok:
		node := da.NewPriorityQueueNode(cost.Secs, v)
		s.info[v] = &vertexInfo{cost: cost, level: level, node: node}
		s.pq.Insert(node)
	case vInfo.settled || cost.Secs >= vInfo.cost.Secs:
		return
	default:
		vInfo.cost = cost
		vInfo.level = level
		_ = s.pq.DecreaseKey(vInfo.node, cost.Secs)
	}

	if upTransition {
		s.upTransitions[uInfo.level]++
	}
}
