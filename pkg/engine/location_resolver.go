package engine

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/concurrent"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/matrix"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/metrics"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/spatialindex"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
)

var ErrOutsideGraph = errors.New("location is outside the road graph area")

type snapKey struct {
	lat, lon float64
	mode     costing.TravelMode
}

type snapResult struct {
	vertex   datastructure.Index
	distance float64
}

// LocationResolver. snaps request locations to the nearest graph vertex reachable by the travel mode
type LocationResolver struct {
	snapper      vertexSnapper
	bounds       *datastructure.BoundingBox
	searchRadius float64 // km
	cache        *lru.Cache[snapKey, snapResult]
}

type vertexSnapper interface {
	SnapToVertex(qLat, qLon, radius float64, mask datastructure.AccessMask) (datastructure.Index, float64, error)
}

// NewLocationResolver. locations farther than the widest snapping radius from bounds are rejected without a snap
func NewLocationResolver(snapper vertexSnapper, bounds *datastructure.BoundingBox, searchRadius float64,
	cacheSize int) (*LocationResolver, error) {
	cache, err := lru.New[snapKey, snapResult](cacheSize)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "failed to create snap cache")
	}
	return &LocationResolver{
		snapper:      snapper,
		bounds:       bounds,
		searchRadius: searchRadius,
		cache:        cache,
	}, nil
}

type snapOutcome struct {
	loc matrix.PathLocation
	err error
}

// Resolve. the returned path locations keep the order of locs. fails on the first location without a nearby road.
func (lr *LocationResolver) Resolve(locs []matrix.Location, mode costing.TravelMode) ([]matrix.PathLocation, error) {
	outcomes := concurrent.Map(locs, 0, func(loc matrix.Location) snapOutcome {
		res, err := lr.snap(loc, mode)
		if err != nil {
			return snapOutcome{err: err}
		}
		return snapOutcome{loc: matrix.NewPathLocation(loc, res.vertex, res.distance)}
	})

	pathLocs := make([]matrix.PathLocation, 0, len(locs))
	for i, out := range outcomes {
		if out.err != nil {
			return nil, util.WrapErrorf(out.err, util.ErrNotFound, "location %d (%f, %f) is not near any %s road",
				i, locs[i].Lat, locs[i].Lon, mode)
		}
		pathLocs = append(pathLocs, out.loc)
	}
	return pathLocs, nil
}

func (lr *LocationResolver) snap(loc matrix.Location, mode costing.TravelMode) (snapResult, error) {
	if !lr.bounds.Contains(loc.Lat, loc.Lon, spatialindex.MaxSnapRadius(lr.searchRadius)) {
		return snapResult{}, ErrOutsideGraph
	}

	key := snapKey{lat: loc.Lat, lon: loc.Lon, mode: mode}
	if res, ok := lr.cache.Get(key); ok {
		metrics.LocationSnapping.WithLabelValues("hit").Inc()
		return res, nil
	}
	metrics.LocationSnapping.WithLabelValues("miss").Inc()

	v, dist, err := lr.snapper.SnapToVertex(loc.Lat, loc.Lon, lr.searchRadius, mode.AccessMask())
	if err != nil {
		return snapResult{}, err
	}
	res := snapResult{vertex: v, distance: dist}
	lr.cache.Add(key, res)
	return res, nil
}
