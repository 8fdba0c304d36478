package pkg

const (
	INF_WEIGHT float64 = 1e15

	// UNREACHED marks a matrix cell with no path within the distance ceiling.
	// costs are never negative, so it cannot collide with a genuine zero-cost pair.
	UNREACHED float64 = -1.0

	// max_matrix_distance used when service_limits has no entry for a costing mode (4000 km)
	DEFAULT_MAX_MATRIX_DISTANCE float64 = 4000000.0

	NERF_MAXSPEED_OSM = 0.9
	EPS               = 1e-9
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	FOOTWAY        OsmHighwayType = 17
	CYCLEWAY       OsmHighwayType = 18
	PATH           OsmHighwayType = 19
	PEDESTRIAN     OsmHighwayType = 20
	STEPS          OsmHighwayType = 21
	UNKNOWN        OsmHighwayType = 22
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	case "footway":
		return FOOTWAY
	case "cycleway":
		return CYCLEWAY
	case "path":
		return PATH
	case "pedestrian":
		return PEDESTRIAN
	case "steps":
		return STEPS
	default:
		return UNKNOWN
	}
}

// number of road hierarchy levels. level 0 = highway, 1 = arterial, 2 = local
const NUM_HIERARCHY_LEVELS = 3

// GetHierarchyLevel. hierarchy level of an osm highway class, lower level = more important road
func GetHierarchyLevel(hw OsmHighwayType) uint8 {
	switch hw {
	case MOTORWAY, MOTORWAY_LINK, TRUNK, TRUNK_LINK, MOTORROAD:
		return 0
	case PRIMARY, PRIMARY_LINK, SECONDARY, SECONDARY_LINK:
		return 1
	default:
		return 2
	}
}
