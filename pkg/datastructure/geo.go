package datastructure

import (
	"math"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/geo"
)

// BoundingBox. lat/lon extent of the graph vertices
type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat,
		minLon: minLon,
		maxLat: maxLat,
		maxLon: maxLon}
}

func (b *BoundingBox) GetMinCoord() (float64, float64) {
	return b.minLat, b.minLon
}

func (b *BoundingBox) GetMaxCoord() (float64, float64) {
	return b.maxLat, b.maxLon
}

// Contains. whether (lat, lon) lies inside the box grown by padding (km) on every side
func (b *BoundingBox) Contains(lat, lon, padding float64) bool {
	minLat, _ := geo.GetDestinationPoint(b.minLat, b.minLon, 180, padding)
	_, minLon := geo.GetDestinationPoint(b.minLat, b.minLon, 270, padding)
	maxLat, _ := geo.GetDestinationPoint(b.maxLat, b.maxLon, 0, padding)
	_, maxLon := geo.GetDestinationPoint(b.maxLat, b.maxLon, 90, padding)
	return lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
}

func computeBoundingBox(vertices []*Vertex) *BoundingBox {
	if len(vertices) == 0 {
		return NewBoundingBox(0, 0, 0, 0)
	}
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minLat = math.Min(minLat, v.lat)
		minLon = math.Min(minLon, v.lon)
		maxLat = math.Max(maxLat, v.lat)
		maxLon = math.Max(maxLon, v.lon)
	}
	return NewBoundingBox(minLat, minLon, maxLat, maxLon)
}
