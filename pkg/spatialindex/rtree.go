package spatialindex

import (
	"errors"
	"math"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var ErrNoNearbyEdge = errors.New("no road segment near the location")

const (
	maxSearchResults  = 32
	maxRadiusDoubling = 4
)

type Rtree struct {
	tr    *rtree.RTreeG[datastructure.Index]
	graph *datastructure.Graph
}

func NewRtree(graph *datastructure.Graph) *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr:    &tr,
		graph: graph,
	}
}

// Build. build r-tree over all edges, each leaf bounding box is padded with boundingBoxRadius (in km)
func (rt *Rtree) Build(boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph.ForOutEdges(func(e *datastructure.OutEdge, tail datastructure.Index) {
		fromLat, fromLon := rt.graph.GetVertexCoordinates(tail)
		toLat, toLon := rt.graph.GetVertexCoordinates(e.GetHead())
		lowerFromLat, lowerFromLon := geo.GetDestinationPoint(fromLat, fromLon, 225, boundingBoxRadius)
		upperFromLat, upperFromLon := geo.GetDestinationPoint(fromLat, fromLon, 45, boundingBoxRadius)

		lowerToLat, lowerToLon := geo.GetDestinationPoint(toLat, toLon, 225, boundingBoxRadius)
		upperToLat, upperToLon := geo.GetDestinationPoint(toLat, toLon, 45, boundingBoxRadius)

		minLat := math.Min(lowerFromLat, lowerToLat)
		minLon := math.Min(lowerFromLon, lowerToLon)
		maxLat := math.Max(upperFromLat, upperToLat)
		maxLon := math.Max(upperFromLon, upperToLon)

		rt.tr.Insert([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat}, e.GetEdgeId())
	})

	log.Info("R-tree spatial index built.", zap.Int("edges", rt.tr.Len()))
}

// MaxSnapRadius. farthest radius (km) SnapToVertex searches when starting from radius
func MaxSnapRadius(radius float64) float64 {
	return radius * float64(int(1)<<maxRadiusDoubling)
}

// SearchWithinRadius search for ids of edges accessible by mask within radius (in km) from the query point (qLat, qLon).
// at most maxSearchResults edges are returned.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64, mask datastructure.AccessMask) []datastructure.Index {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			if !rt.graph.GetOutEdge(data).IsAccessible(mask) {
				return true
			}
			results = append(results, data)
			return len(results) < maxSearchResults
		})
	return results
}

// SnapToVertex. find the edge nearest to (qLat, qLon) usable by a travel mode & return its closer endpoint.
// the search radius doubles when nothing is found, up to maxRadiusDoubling times.
// returns the vertex & the snapping distance in meter.
func (rt *Rtree) SnapToVertex(qLat, qLon, radius float64, mask datastructure.AccessMask) (datastructure.Index, float64, error) {
	query := geo.NewCoordinate(qLat, qLon)
	for attempt := 0; attempt <= maxRadiusDoubling; attempt++ {
		bestEdge := datastructure.INVALID_EDGE_ID
		bestDist := math.Inf(1)
		for _, edgeId := range rt.SearchWithinRadius(qLat, qLon, radius, mask) {
			e := rt.graph.GetOutEdge(edgeId)
			tail := rt.graph.GetTailOfOutEdge(edgeId)
			dist := geo.PointLinePerpendicularDistance(rt.coordOf(tail), rt.coordOf(e.GetHead()), query)
			if dist < bestDist || (dist == bestDist && edgeId < bestEdge) {
				bestDist = dist
				bestEdge = edgeId
			}
		}

		if bestEdge != datastructure.INVALID_EDGE_ID {
			tail := rt.graph.GetTailOfOutEdge(bestEdge)
			head := rt.graph.GetOutEdge(bestEdge).GetHead()
			tailDist := rt.distanceTo(tail, query)
			headDist := rt.distanceTo(head, query)
			if headDist < tailDist {
				return head, headDist, nil
			}
			return tail, tailDist, nil
		}
		radius *= 2
	}
	return datastructure.INVALID_VERTEX_ID, 0, ErrNoNearbyEdge
}

func (rt *Rtree) coordOf(u datastructure.Index) geo.Coordinate {
	lat, lon := rt.graph.GetVertexCoordinates(u)
	return geo.NewCoordinate(lat, lon)
}

// distance in meter
func (rt *Rtree) distanceTo(u datastructure.Index, q geo.Coordinate) float64 {
	lat, lon := rt.graph.GetVertexCoordinates(u)
	return geo.CalculateHaversineDistance(lat, lon, q.GetLat(), q.GetLon()) * 1000
}
