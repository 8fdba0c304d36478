package datastructure

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSmallGraph() *Graph {
	gb := NewGraphBuilder()
	a := gb.AddVertex(-7.550, 110.780, 10)
	b := gb.AddVertex(-7.551, 110.781, 11)
	c := gb.AddVertex(-7.552, 110.782, 12)
	gb.AddEdge(c, a, 300, 30, pkg.RESIDENTIAL, ACCESS_ALL)
	gb.AddBidirectionalEdge(a, b, 100, 50, pkg.PRIMARY, ACCESS_AUTO|ACCESS_BICYCLE)
	gb.AddEdge(b, c, -1, 0, pkg.FOOTWAY, ACCESS_PEDESTRIAN)
	return gb.Build()
}

func TestGraphBuilder(t *testing.T) {
	g := buildSmallGraph()

	require.Equal(t, 3, g.NumberOfVertices())
	require.Equal(t, 4, g.NumberOfEdges())

	testCases := []struct {
		name      string
		vertex    Index
		wantHeads []Index
		wantTails []Index
	}{
		{name: "vertex a", vertex: 0, wantHeads: []Index{1}, wantTails: []Index{2, 1}},
		{name: "vertex b", vertex: 1, wantHeads: []Index{0, 2}, wantTails: []Index{0}},
		{name: "vertex c", vertex: 2, wantHeads: []Index{0}, wantTails: []Index{1}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			heads := make([]Index, 0)
			g.ForOutEdgesOf(tt.vertex, func(e *OutEdge) {
				heads = append(heads, e.GetHead())
				assert.Equal(t, tt.vertex, g.GetTailOfOutEdge(e.GetEdgeId()))
			})
			assert.ElementsMatch(t, tt.wantHeads, heads)

			tails := make([]Index, 0)
			g.ForInEdgesOf(tt.vertex, func(e *InEdge) {
				tails = append(tails, e.GetTail())
				assert.Equal(t, tt.vertex, g.GetOutEdge(e.GetEdgeId()).GetHead())
			})
			assert.ElementsMatch(t, tt.wantTails, tails)
			assert.Equal(t, Index(len(tt.wantHeads)), g.GetOutDegree(tt.vertex))
			assert.Equal(t, Index(len(tt.wantTails)), g.GetInDegree(tt.vertex))
		})
	}
}

func TestGraphBuilderHaversineLength(t *testing.T) {
	g := buildSmallGraph()
	var footway *OutEdge
	g.ForOutEdgesOf(1, func(e *OutEdge) {
		if e.GetHead() == 2 {
			footway = e
		}
	})
	require.NotNil(t, footway)
	// ~156 meter between b & c
	assert.InDelta(t, 156.0, footway.GetLength(), 2.0)
	assert.True(t, footway.IsAccessible(ACCESS_PEDESTRIAN))
	assert.False(t, footway.IsAccessible(ACCESS_AUTO))
	assert.Equal(t, uint8(2), footway.GetLevel())
}

func TestWriteReadGraph(t *testing.T) {
	g := buildSmallGraph()
	filename := filepath.Join(t.TempDir(), "small.graph")

	require.NoError(t, g.WriteGraph(filename))

	got, err := ReadGraph(filename)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfVertices(), got.NumberOfVertices())
	require.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())
	for v := 0; v < g.NumberOfVertices(); v++ {
		lat, lon := g.GetVertexCoordinates(Index(v))
		gotLat, gotLon := got.GetVertexCoordinates(Index(v))
		assert.Equal(t, lat, gotLat)
		assert.Equal(t, lon, gotLon)
		assert.Equal(t, g.GetVertex(Index(v)).GetOsmId(), got.GetVertex(Index(v)).GetOsmId())
	}
	for e := 0; e < g.NumberOfEdges(); e++ {
		want, have := g.GetOutEdge(Index(e)), got.GetOutEdge(Index(e))
		assert.Equal(t, want.GetHead(), have.GetHead())
		assert.Equal(t, g.GetTailOfOutEdge(Index(e)), got.GetTailOfOutEdge(Index(e)))
		assert.Equal(t, want.GetLength(), have.GetLength())
		assert.Equal(t, want.GetHighwayType(), have.GetHighwayType())
		assert.Equal(t, want.GetAccess(), have.GetAccess())
	}
}

func TestMinHeap(t *testing.T) {
	h := NewFourAryHeap[Index]()
	nodes := make([]*PriorityQueueNode[Index], 0)
	for i, rank := range []float64{5, 3, 8, 1, 9, 7} {
		node := NewPriorityQueueNode(rank, Index(i))
		nodes = append(nodes, node)
		h.Insert(node)
	}

	require.NoError(t, h.DecreaseKey(nodes[4], 0.5))
	assert.Error(t, h.DecreaseKey(nodes[0], 10))

	want := []Index{4, 3, 1, 0, 5, 2}
	for _, w := range want {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		assert.Equal(t, w, node.GetItem())
	}
	assert.True(t, h.IsEmpty())
	_, err := h.ExtractMin()
	assert.Error(t, err)
}

func TestBoundingBox(t *testing.T) {
	g := buildSmallGraph()
	bb := g.GetBoundingBox()

	minLat, minLon := bb.GetMinCoord()
	maxLat, maxLon := bb.GetMaxCoord()
	assert.Equal(t, -7.552, minLat)
	assert.Equal(t, 110.780, minLon)
	assert.Equal(t, -7.550, maxLat)
	assert.Equal(t, 110.782, maxLon)

	testCases := []struct {
		name    string
		lat     float64
		lon     float64
		padding float64
		want    bool
	}{
		{name: "inside", lat: -7.551, lon: 110.781, padding: 0, want: true},
		{name: "500m north without padding", lat: -7.5455, lon: 110.781, padding: 0.1, want: false},
		{name: "500m north within padding", lat: -7.5455, lon: 110.781, padding: 1, want: true},
		{name: "1.1km west without padding", lat: -7.551, lon: 110.770, padding: 0.5, want: false},
		{name: "1.1km west within padding", lat: -7.551, lon: 110.770, padding: 2, want: true},
		{name: "other city", lat: -6.2, lon: 106.8, padding: 2, want: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bb.Contains(tt.lat, tt.lon, tt.padding))
		})
	}
}
