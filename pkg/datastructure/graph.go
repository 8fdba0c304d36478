package datastructure

import (
	"math"
	"sort"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

// access flags of an edge, one bit per travel mode
type AccessMask uint8

const (
	ACCESS_AUTO AccessMask = 1 << iota
	ACCESS_BICYCLE
	ACCESS_PEDESTRIAN

	ACCESS_ALL = ACCESS_AUTO | ACCESS_BICYCLE | ACCESS_PEDESTRIAN
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	firstIn  Index // index of the first inEdge of this vertex in the flattened graph.inEdges array
	osmId    int64
}

func NewVertex(lat, lon float64) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
	}
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetOsmId() int64 {
	return v.osmId
}

// edgeAttributes shared by outEdge & inEdge
type edgeAttributes struct {
	edgeId Index
	dist   float64 // meter
	speed  float64 // km/h, 0 = unknown
	hwType pkg.OsmHighwayType
	access AccessMask
}

func (e *edgeAttributes) GetEdgeId() Index {
	return e.edgeId
}

func (e *edgeAttributes) GetLength() float64 {
	return e.dist
}

func (e *edgeAttributes) GetEdgeSpeed() float64 {
	return e.speed
}

func (e *edgeAttributes) GetHighwayType() pkg.OsmHighwayType {
	return e.hwType
}

func (e *edgeAttributes) GetAccess() AccessMask {
	return e.access
}

func (e *edgeAttributes) IsAccessible(mask AccessMask) bool {
	return e.access&mask != 0
}

// GetLevel. hierarchy level of the edge (0 = highway, 1 = arterial, 2 = local)
func (e *edgeAttributes) GetLevel() uint8 {
	return pkg.GetHierarchyLevel(e.hwType)
}

// outedge u->head, stored at u
type OutEdge struct {
	edgeAttributes
	head Index
}

// inedge tail->v, stored at v. edgeId is the id of the matching outedge
type InEdge struct {
	edgeAttributes
	tail Index
}

func NewOutEdge(edgeId, head Index, dist, speed float64, hwType pkg.OsmHighwayType, access AccessMask) *OutEdge {
	return &OutEdge{
		edgeAttributes: edgeAttributes{edgeId: edgeId, dist: dist, speed: speed, hwType: hwType, access: access},
		head:           head,
	}
}

func NewInEdge(edgeId, tail Index, dist, speed float64, hwType pkg.OsmHighwayType, access AccessMask) *InEdge {
	return &InEdge{
		edgeAttributes: edgeAttributes{edgeId: edgeId, dist: dist, speed: speed, hwType: hwType, access: access},
		tail:           tail,
	}
}

func (e *OutEdge) GetHead() Index {
	return e.head
}

func (e *InEdge) GetTail() Index {
	return e.tail
}

// Graph. static road network graph in forward & backward adjacency array form
type Graph struct {
	vertices    []*Vertex
	outEdges    []*OutEdge
	inEdges     []*InEdge
	edgeTails   []Index // edgeTails[edgeId] = tail of outEdges[edgeId]
	boundingBox *BoundingBox
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetOutEdge(edgeId Index) *OutEdge {
	return g.outEdges[edgeId]
}

func (g *Graph) GetTailOfOutEdge(edgeId Index) Index {
	return g.edgeTails[edgeId]
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.endOut(u) - g.vertices[u].firstOut
}

func (g *Graph) GetInDegree(u Index) Index {
	return g.endIn(u) - g.vertices[u].firstIn
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

func (g *Graph) endOut(u Index) Index {
	if int(u)+1 < len(g.vertices) {
		return g.vertices[u+1].firstOut
	}
	return Index(len(g.outEdges))
}

func (g *Graph) endIn(u Index) Index {
	if int(u)+1 < len(g.vertices) {
		return g.vertices[u+1].firstIn
	}
	return Index(len(g.inEdges))
}

// ForOutEdgesOf. iterate all outEdges u->v of vertex u
func (g *Graph) ForOutEdgesOf(u Index, handle func(e *OutEdge)) {
	for i := g.vertices[u].firstOut; i < g.endOut(u); i++ {
		handle(g.outEdges[i])
	}
}

// ForInEdgesOf. iterate all inEdges w->u of vertex u
func (g *Graph) ForInEdgesOf(u Index, handle func(e *InEdge)) {
	for i := g.vertices[u].firstIn; i < g.endIn(u); i++ {
		handle(g.inEdges[i])
	}
}

// ForOutEdges. iterate all edges of the graph with their tail
func (g *Graph) ForOutEdges(handle func(e *OutEdge, tail Index)) {
	for u := range g.vertices {
		g.ForOutEdgesOf(Index(u), func(e *OutEdge) {
			handle(e, Index(u))
		})
	}
}

type builderEdge struct {
	from, to Index
	dist     float64
	speed    float64
	hwType   pkg.OsmHighwayType
	access   AccessMask
}

// GraphBuilder. collects vertices & edges, then lays them out as adjacency arrays.
type GraphBuilder struct {
	vertices []*Vertex
	edges    []builderEdge
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0),
		edges:    make([]builderEdge, 0),
	}
}

func (gb *GraphBuilder) AddVertex(lat, lon float64, osmId int64) Index {
	id := Index(len(gb.vertices))
	v := NewVertex(lat, lon)
	v.osmId = osmId
	gb.vertices = append(gb.vertices, v)
	return id
}

func (gb *GraphBuilder) NumberOfVertices() int {
	return len(gb.vertices)
}

// AddEdge. add directed edge from->to. if dist < 0, the haversine distance between both vertices is used
func (gb *GraphBuilder) AddEdge(from, to Index, dist, speed float64, hwType pkg.OsmHighwayType, access AccessMask) {
	if dist < 0 {
		a, b := gb.vertices[from], gb.vertices[to]
		dist = geo.CalculateHaversineDistance(a.lat, a.lon, b.lat, b.lon) * 1000
	}
	gb.edges = append(gb.edges, builderEdge{from: from, to: to, dist: dist, speed: speed, hwType: hwType, access: access})
}

// AddBidirectionalEdge. add from->to and to->from with the same attributes
func (gb *GraphBuilder) AddBidirectionalEdge(from, to Index, dist, speed float64, hwType pkg.OsmHighwayType, access AccessMask) {
	gb.AddEdge(from, to, dist, speed, hwType, access)
	gb.AddEdge(to, from, dist, speed, hwType, access)
}

// Build. sort edges by tail (outEdges) and by head (inEdges). edge ids follow the outEdges order.
func (gb *GraphBuilder) Build() *Graph {
	n := len(gb.vertices)
	edges := make([]builderEdge, len(gb.edges))
	copy(edges, gb.edges)
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].from < edges[j].from
	})

	g := &Graph{
		vertices:  gb.vertices,
		outEdges:  make([]*OutEdge, len(edges)),
		inEdges:   make([]*InEdge, 0, len(edges)),
		edgeTails: make([]Index, len(edges)),
	}

	outCount := make([]Index, n+1)
	inCount := make([]Index, n+1)
	for i, e := range edges {
		g.outEdges[i] = NewOutEdge(Index(i), e.to, e.dist, e.speed, e.hwType, e.access)
		g.edgeTails[i] = e.from
		outCount[e.from+1]++
		inCount[e.to+1]++
	}
	for i := 1; i <= n; i++ {
		outCount[i] += outCount[i-1]
		inCount[i] += inCount[i-1]
	}
	for u := 0; u < n; u++ {
		g.vertices[u].firstOut = outCount[u]
		g.vertices[u].firstIn = inCount[u]
	}

	inPos := make([]Index, n)
	copy(inPos, inCount[:n])
	inEdges := make([]*InEdge, len(edges))
	for i, e := range edges {
		inEdges[inPos[e.to]] = NewInEdge(Index(i), e.from, e.dist, e.speed, e.hwType, e.access)
		inPos[e.to]++
	}
	g.inEdges = inEdges

	g.boundingBox = computeBoundingBox(g.vertices)
	return g
}
