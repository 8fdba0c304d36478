package matrix

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
)

var (
	ErrNoCostingMethod = errors.New("no costing method for travel mode")
	ErrInvalidVertex   = errors.New("location is not anchored to a graph vertex")
)

// Graph. read-only road network used by the matrix backends, implemented by *datastructure.Graph
type Graph interface {
	NumberOfVertices() int
	ForOutEdgesOf(u datastructure.Index, handle func(e *datastructure.OutEdge))
	ForInEdgesOf(u datastructure.Index, handle func(e *datastructure.InEdge))
}

// Backend computes the full source x target matrix of a request.
// implementations keep no state between calls, every call returns a newly allocated CostMatrix.
// the search honors the hierarchy limits of modeCosting[mode] & never extends a path beyond maxMatrixDistance meter.
type Backend interface {
	Name() string
	SourceToTarget(req *Request, graph Graph, modeCosting costing.ModeCosting, mode costing.TravelMode,
		maxMatrixDistance float64) (*CostMatrix, error)
}

func checkRequest(req *Request, graph Graph, modeCosting costing.ModeCosting,
	mode costing.TravelMode) (costing.CostingMethod, error) {
	if int(mode) >= len(modeCosting) || modeCosting[mode] == nil {
		return nil, util.WrapErrorf(ErrNoCostingMethod, util.ErrBadParamInput, "travel mode %s", mode)
	}
	if len(req.Sources) == 0 || len(req.Targets) == 0 {
		return nil, util.WrapErrorf(ErrEmptyLocations, util.ErrBadParamInput, "invalid matrix request")
	}

	n := graph.NumberOfVertices()
	for _, locs := range [][]PathLocation{req.Sources, req.Targets} {
		for _, loc := range locs {
			if int(loc.Vertex) >= n {
				return nil, util.WrapErrorf(ErrInvalidVertex, util.ErrBadParamInput,
					"location %f,%f has vertex %d", loc.Lat, loc.Lon, loc.Vertex)
			}
		}
	}
	return modeCosting[mode], nil
}
