package osmparser

import (
	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
)

type NodeCoord struct {
	lat float64
	lon float64
}

func NewNodeCoord(lat, lon float64) NodeCoord {
	return NodeCoord{lat, lon}
}

type osmWay struct {
	id       int64
	nodes    []int64
	hwType   pkg.OsmHighwayType
	speed    float64 // km/h
	access   datastructure.AccessMask
	oneWay   bool
	forward  bool // oneway direction follows node order
	junction string
}

var (
	acceptedHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"residential":    {},
		"living_street":  {},
		"service":        {},
		"unclassified":   {},
		"road":           {},
		"track":          {},
		"motorroad":      {},
		"footway":        {},
		"cycleway":       {},
		"path":           {},
		"pedestrian":     {},
		"steps":          {},
	}
)
