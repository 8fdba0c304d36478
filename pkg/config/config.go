package config

import (
	"strconv"
	"time"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/costing"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port      int
	Timeout   time.Duration
	RateLimit float64 // requests per second
}

// Config. configuration table of the matrix tools, loaded once at startup
type Config struct {
	GraphFile    string
	OsmFile      string
	SearchRadius float64 // km

	CostLimits            *CostLimitTable
	HierarchyLimits       map[string]costing.HierarchyLimitsConfig
	StrictHierarchyLimits bool
	OptimizerMaxPasses    int

	HTTP HTTPConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("graph.file", "./data/graph.bz2")
	v.SetDefault("graph.osm_file", "./data/map.osm.pbf")
	v.SetDefault("loki.search_radius", 0.1)
	v.SetDefault("thor.strict_hierarchy_limits", false)
	v.SetDefault("thor.optimizer.max_passes", 100)
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.rate_limit", 50.0)
}

// Load. read config file at path, or the inline json document if not empty
func Load(path, inline string) (*Config, error) {
	v := viper.New()
	if err := util.ReadConfig(v, path, inline); err != nil {
		return nil, util.WrapErrorf(err, util.ErrConfiguration, "failed to read config")
	}
	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		GraphFile:             v.GetString("graph.file"),
		OsmFile:               v.GetString("graph.osm_file"),
		SearchRadius:          v.GetFloat64("loki.search_radius"),
		StrictHierarchyLimits: v.GetBool("thor.strict_hierarchy_limits"),
		OptimizerMaxPasses:    v.GetInt("thor.optimizer.max_passes"),
		HierarchyLimits:       make(map[string]costing.HierarchyLimitsConfig),
		HTTP: HTTPConfig{
			Port:      v.GetInt("http.port"),
			Timeout:   v.GetDuration("http.timeout"),
			RateLimit: v.GetFloat64("http.rate_limit"),
		},
	}

	limits := make(map[string]float64)
	for key := range v.GetStringMap("service_limits") {
		distKey := "service_limits." + key + ".max_matrix_distance"
		if !v.IsSet(distKey) {
			continue
		}
		dist, err := cast.ToFloat64E(v.Get(distKey))
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrConfiguration, "invalid %s", distKey)
		}
		limits[key] = dist
	}
	cfg.CostLimits = NewCostLimitTable(limits, costing.KnownModes())

	for _, profile := range []string{costing.PROFILE_COSTMATRIX, costing.PROFILE_TIMEDISTANCEMATRIX} {
		hl, err := parseHierarchyLimits(v, profile)
		if err != nil {
			return nil, err
		}
		cfg.HierarchyLimits[profile] = hl
	}
	return cfg, nil
}

// HierarchyLimitsOf. hierarchy limits profile of a matrix backend, built-in values if not configured
func (c *Config) HierarchyLimitsOf(profile string) costing.HierarchyLimitsConfig {
	if hl, ok := c.HierarchyLimits[profile]; ok {
		return hl
	}
	return costing.DefaultHierarchyLimitsConfig(profile)
}

// parseHierarchyLimits. each key under service_limits.hierarchy_limits.<profile> maps level -> value,
// e.g. "max_allowed_up_transitions": {"1": 400, "2": 100}. levels not listed keep the built-in value.
func parseHierarchyLimits(v *viper.Viper, profile string) (costing.HierarchyLimitsConfig, error) {
	hl := costing.DefaultHierarchyLimitsConfig(profile)
	prefix := "service_limits.hierarchy_limits." + profile + "."

	readLevels := func(key string, set func(level int, value interface{}) error) error {
		for levelStr, value := range v.GetStringMap(prefix + key) {
			level, err := strconv.Atoi(levelStr)
			if err != nil || level < 0 || level >= pkg.NUM_HIERARCHY_LEVELS {
				return util.WrapErrorf(err, util.ErrConfiguration, "invalid hierarchy level %q in %s%s",
					levelStr, prefix, key)
			}
			if err := set(level, value); err != nil {
				return util.WrapErrorf(err, util.ErrConfiguration, "invalid value of %s%s.%s", prefix, key, levelStr)
			}
		}
		return nil
	}

	upTransitions := func(dst *[pkg.NUM_HIERARCHY_LEVELS]uint32) func(int, interface{}) error {
		return func(level int, value interface{}) error {
			n, err := cast.ToUint32E(value)
			dst[level] = n
			return err
		}
	}
	distances := func(dst *[pkg.NUM_HIERARCHY_LEVELS]float64) func(int, interface{}) error {
		return func(level int, value interface{}) error {
			d, err := cast.ToFloat64E(value)
			dst[level] = d
			return err
		}
	}

	if err := readLevels("max_allowed_up_transitions", upTransitions(&hl.MaxAllowedUpTransitions)); err != nil {
		return hl, err
	}
	if err := readLevels("max_expand_within_distance", distances(&hl.MaxExpandWithinDistance)); err != nil {
		return hl, err
	}
	if err := readLevels("default_up_transitions", upTransitions(&hl.DefaultUpTransitions)); err != nil {
		return hl, err
	}
	if err := readLevels("default_expand_within_distance", distances(&hl.DefaultExpandWithinDistance)); err != nil {
		return hl, err
	}
	return hl, nil
}
