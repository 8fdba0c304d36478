package matrix

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/geo"
)

// Location. point of a matrix request. the address fields are only for display.
type Location struct {
	Lat        float64  `json:"lat" validate:"min=-90,max=90"`
	Lon        float64  `json:"lon" validate:"min=-180,max=180"`
	Heading    *float64 `json:"heading,omitempty" validate:"omitempty,min=0,max=360"`
	Name       string   `json:"name,omitempty"`
	Street     string   `json:"street,omitempty"`
	City       string   `json:"city,omitempty"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Country    string   `json:"country,omitempty"`
}

func NewLocation(lat, lon float64) Location {
	return Location{Lat: lat, Lon: lon}
}

func (l Location) Coordinate() geo.Coordinate {
	return geo.NewCoordinate(l.Lat, l.Lon)
}

// SameCoordinates. exact comparison, no tolerance
func (l Location) SameCoordinates(o Location) bool {
	return l.Lat == o.Lat && l.Lon == o.Lon
}

// PathLocation. location snapped to a graph vertex
type PathLocation struct {
	Location
	Vertex       datastructure.Index
	SnapDistance float64 // meter
}

func NewPathLocation(loc Location, vertex datastructure.Index, snapDistance float64) PathLocation {
	return PathLocation{Location: loc, Vertex: vertex, SnapDistance: snapDistance}
}

// Request. resolved matrix request, cell (i, j) = Sources[i] -> Targets[j]
type Request struct {
	Sources []PathLocation
	Targets []PathLocation
	Costing string
}

func NewRequest(sources, targets []PathLocation, costingName string) *Request {
	return &Request{Sources: sources, Targets: targets, Costing: costingName}
}
