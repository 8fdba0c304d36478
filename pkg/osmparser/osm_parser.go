package osmparser

import (
	"context"
	"os"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type OsmParser struct {
	wayNodeMap      map[int64]struct{} // osm node ids referenced by accepted ways
	acceptedNodeMap map[int64]NodeCoord
	ways            []osmWay
	useMaxSpeed     bool
	logger          *zap.Logger
}

func NewOSMParser(logger *zap.Logger, useMaxSpeed bool) *OsmParser {
	return &OsmParser{
		wayNodeMap:      make(map[int64]struct{}),
		acceptedNodeMap: make(map[int64]NodeCoord),
		ways:            make([]osmWay, 0),
		useMaxSpeed:     useMaxSpeed,
		logger:          logger,
	}
}

// Parse. read openstreetmap pbf file into a road network graph.
// first pass scans ways to know which nodes are used, second pass reads coordinates of those nodes.
func (p *OsmParser) Parse(mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if p.AddWay(way) {
			countWays++
			if countWays%50000 == 0 {
				p.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	if _, err = f.Seek(0, 0); err != nil {
		return nil, err
	}

	scanner = osmpbf.New(context.Background(), f, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true
	countNodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if p.AddNode(node) {
			countNodes++
			if countNodes%500000 == 0 {
				p.logger.Sugar().Infof("processing openstreetmap nodes: %d...", countNodes)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	graph := p.BuildGraph()
	p.logger.Sugar().Infof("number of vertices: %v", graph.NumberOfVertices())
	p.logger.Sugar().Infof("number of edges: %v", graph.NumberOfEdges())
	return graph, nil
}

// AddWay. keep way if it is a routable highway. returns true if accepted
func (p *OsmParser) AddWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 || !acceptOsmWay(way) {
		return false
	}

	hwType := pkg.GetHighwayType(way.Tags.Find("highway"))
	access := wayAccess(way, hwType)
	if access == 0 {
		return false
	}

	speed := roadTypeSpeed(hwType)
	if p.useMaxSpeed {
		if maxSpeed := parseMaxSpeed(way.Tags.Find("maxspeed")); maxSpeed > 0 {
			speed = maxSpeed * pkg.NERF_MAXSPEED_OSM
		}
	}

	oneWay, forward := getOneWay(way)
	nodes := make([]int64, 0, len(way.Nodes))
	for _, node := range way.Nodes {
		nodes = append(nodes, int64(node.ID))
		p.wayNodeMap[int64(node.ID)] = struct{}{}
	}

	p.ways = append(p.ways, osmWay{
		id:       int64(way.ID),
		nodes:    nodes,
		hwType:   hwType,
		speed:    speed,
		access:   access,
		oneWay:   oneWay,
		forward:  forward,
		junction: way.Tags.Find("junction"),
	})
	return true
}

// AddNode. store coordinate of node if some accepted way uses it
func (p *OsmParser) AddNode(node *osm.Node) bool {
	if _, ok := p.wayNodeMap[int64(node.ID)]; !ok {
		return false
	}
	p.acceptedNodeMap[int64(node.ID)] = NewNodeCoord(node.Lat, node.Lon)
	return true
}

// BuildGraph. every consecutive node pair of a way becomes an edge.
// oneway ways only restrict auto & bicycle, pedestrians can walk both directions.
func (p *OsmParser) BuildGraph() *datastructure.Graph {
	gb := datastructure.NewGraphBuilder()
	nodeIDMap := make(map[int64]datastructure.Index, len(p.acceptedNodeMap))

	vertexOf := func(osmId int64) (datastructure.Index, bool) {
		if id, ok := nodeIDMap[osmId]; ok {
			return id, true
		}
		coord, ok := p.acceptedNodeMap[osmId]
		if !ok {
			return datastructure.INVALID_VERTEX_ID, false
		}
		id := gb.AddVertex(coord.lat, coord.lon, osmId)
		nodeIDMap[osmId] = id
		return id, true
	}

	for _, way := range p.ways {
		for i := 0; i+1 < len(way.nodes); i++ {
			u, okU := vertexOf(way.nodes[i])
			v, okV := vertexOf(way.nodes[i+1])
			if !okU || !okV || u == v {
				continue
			}

			if !way.oneWay {
				gb.AddBidirectionalEdge(u, v, -1, way.speed, way.hwType, way.access)
				continue
			}

			from, to := u, v
			if !way.forward {
				from, to = v, u
			}
			gb.AddEdge(from, to, -1, way.speed, way.hwType, way.access)
			if way.access&datastructure.ACCESS_PEDESTRIAN != 0 {
				gb.AddEdge(to, from, -1, way.speed, way.hwType, datastructure.ACCESS_PEDESTRIAN)
			}
		}
	}

	return gb.Build()
}
