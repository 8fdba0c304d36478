package costing

import (
	"errors"
	"strings"

	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
)

type TravelMode uint8

const (
	AUTO TravelMode = iota
	BICYCLE
	PEDESTRIAN

	NUM_TRAVEL_MODES = 3
)

var ErrUnknownCosting = errors.New("unknown costing mode")

var modeNames = [NUM_TRAVEL_MODES]string{"auto", "bicycle", "pedestrian"}

func (m TravelMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// AccessMask. edge access bit a travel mode needs
func (m TravelMode) AccessMask() datastructure.AccessMask {
	switch m {
	case BICYCLE:
		return datastructure.ACCESS_BICYCLE
	case PEDESTRIAN:
		return datastructure.ACCESS_PEDESTRIAN
	default:
		return datastructure.ACCESS_AUTO
	}
}

// KnownModes. names of every costing mode this router can build
func KnownModes() []string {
	modes := make([]string, len(modeNames))
	copy(modes, modeNames[:])
	return modes
}

func ParseTravelMode(name string) (TravelMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, modeName := range modeNames {
		if modeName == name {
			return TravelMode(i), nil
		}
	}
	return AUTO, ErrUnknownCosting
}
