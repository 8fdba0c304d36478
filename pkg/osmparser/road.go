package osmparser

import (
	"strconv"
	"strings"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/paulmach/osm"
)

// roadTypeSpeed. default driving speed (km/h) of an osm highway class
func roadTypeSpeed(roadType pkg.OsmHighwayType) float64 {
	switch roadType {
	case pkg.MOTORWAY:
		return 95
	case pkg.TRUNK, pkg.MOTORROAD:
		return 80
	case pkg.PRIMARY:
		return 65
	case pkg.SECONDARY:
		return 55
	case pkg.TERTIARY:
		return 45
	case pkg.MOTORWAY_LINK, pkg.TRUNK_LINK:
		return 50
	case pkg.PRIMARY_LINK, pkg.SECONDARY_LINK, pkg.TERTIARY_LINK:
		return 40
	case pkg.RESIDENTIAL, pkg.UNCLASSIFIED, pkg.ROAD:
		return 30
	case pkg.SERVICE, pkg.TRACK:
		return 20
	case pkg.LIVING_STREET:
		return 10
	default:
		return 5
	}
}

// defaultAccess. travel modes allowed on an osm highway class before access tags are applied
func defaultAccess(roadType pkg.OsmHighwayType) datastructure.AccessMask {
	switch roadType {
	case pkg.MOTORWAY, pkg.MOTORWAY_LINK, pkg.TRUNK, pkg.TRUNK_LINK, pkg.MOTORROAD:
		return datastructure.ACCESS_AUTO
	case pkg.FOOTWAY, pkg.PEDESTRIAN, pkg.STEPS:
		return datastructure.ACCESS_PEDESTRIAN
	case pkg.CYCLEWAY, pkg.PATH, pkg.TRACK:
		return datastructure.ACCESS_BICYCLE | datastructure.ACCESS_PEDESTRIAN
	default:
		return datastructure.ACCESS_ALL
	}
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted" || value == "private"
}

// wayAccess. apply access, motor_vehicle, bicycle & foot tags on top of the highway default
func wayAccess(way *osm.Way, roadType pkg.OsmHighwayType) datastructure.AccessMask {
	access := defaultAccess(roadType)
	if isRestricted(way.Tags.Find("access")) {
		access = 0
	}

	if v := way.Tags.Find("motor_vehicle"); isRestricted(v) {
		access &^= datastructure.ACCESS_AUTO
	} else if v == "yes" || v == "designated" {
		access |= datastructure.ACCESS_AUTO
	}

	if v := way.Tags.Find("bicycle"); isRestricted(v) {
		access &^= datastructure.ACCESS_BICYCLE
	} else if v == "yes" || v == "designated" {
		access |= datastructure.ACCESS_BICYCLE
	}

	if v := way.Tags.Find("foot"); isRestricted(v) {
		access &^= datastructure.ACCESS_PEDESTRIAN
	} else if v == "yes" || v == "designated" {
		access |= datastructure.ACCESS_PEDESTRIAN
	}
	return access
}

// parseMaxSpeed. maxspeed tag in km/h, 0 if missing or not numeric
func parseMaxSpeed(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	mph := strings.HasSuffix(value, "mph")
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(value, "mph"), "km/h"))
	speed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	if mph {
		speed *= 1.609344
	}
	return speed
}

// getOneWay. returns (oneWay, forward). forward=false means traffic flows against node order
func getOneWay(way *osm.Way) (bool, bool) {
	switch way.Tags.Find("oneway") {
	case "yes", "true", "1":
		return true, true
	case "-1", "reverse":
		return true, false
	case "no", "false", "0":
		return false, true
	}
	if j := way.Tags.Find("junction"); j == "roundabout" || j == "circular" {
		return true, true
	}
	hw := way.Tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" {
		return true, true
	}
	return false, true
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	_, ok := acceptedHighway[highway]
	return ok
}
