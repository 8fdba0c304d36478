package costing

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTravelMode(t *testing.T) {
	testCases := []struct {
		name    string
		costing string
		want    TravelMode
		wantErr bool
	}{
		{name: "auto", costing: "auto", want: AUTO},
		{name: "case insensitive", costing: " Bicycle ", want: BICYCLE},
		{name: "pedestrian", costing: "pedestrian", want: PEDESTRIAN},
		{name: "unknown", costing: "truck", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTravelMode(tt.costing)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownCosting)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, KnownModes(), got.String())
		})
	}
}

func TestEdgeCost(t *testing.T) {
	primary := datastructure.NewOutEdge(0, 1, 1000, 72, pkg.PRIMARY, datastructure.ACCESS_ALL)
	footway := datastructure.NewOutEdge(1, 2, 510, 0, pkg.FOOTWAY, datastructure.ACCESS_PEDESTRIAN)

	modeCosting, _, err := NewFactory().CreateModeCosting(RequestOptions{Costing: "auto"})
	require.NoError(t, err)

	testCases := []struct {
		name        string
		mode        TravelMode
		edge        Edge
		wantAllowed bool
		wantSecs    float64
	}{
		{name: "auto on primary", mode: AUTO, edge: primary, wantAllowed: true, wantSecs: 50},
		{name: "bicycle capped at cycling speed", mode: BICYCLE, edge: primary, wantAllowed: true, wantSecs: 180},
		{name: "pedestrian walks", mode: PEDESTRIAN, edge: footway, wantAllowed: true, wantSecs: 360},
		{name: "auto not allowed on footway", mode: AUTO, edge: footway, wantAllowed: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			method := modeCosting[tt.mode]
			assert.Equal(t, tt.wantAllowed, method.Allowed(tt.edge))
			if !tt.wantAllowed {
				return
			}
			cost := method.EdgeCost(tt.edge)
			assert.InDelta(t, tt.wantSecs, cost.Secs, 1e-6)
			assert.InDelta(t, tt.edge.GetLength(), cost.Meters, 1e-9)
		})
	}
}

func TestCreateModeCostingOptions(t *testing.T) {
	userLimits := UnlimitedHierarchyLimits()
	modeCosting, mode, err := NewFactory().CreateModeCosting(RequestOptions{
		Costing:        "auto",
		CostingOptions: map[string]Options{"auto": {Speed: 36, HierarchyLimits: &userLimits}},
	})
	require.NoError(t, err)
	assert.Equal(t, AUTO, mode)

	method := modeCosting[AUTO]
	assert.NotNil(t, method.Options().HierarchyLimits)
	edge := datastructure.NewOutEdge(0, 1, 1000, 72, pkg.PRIMARY, datastructure.ACCESS_ALL)
	assert.InDelta(t, 100.0, method.EdgeCost(edge).Secs, 1e-6)

	// other modes are built with their defaults
	assert.Nil(t, modeCosting[BICYCLE].Options().HierarchyLimits)

	_, _, err = NewFactory().CreateModeCosting(RequestOptions{Costing: "bus"})
	assert.ErrorIs(t, err, ErrUnknownCosting)
}

func TestValidateHierarchyLimits(t *testing.T) {
	profile := DefaultHierarchyLimitsConfig(PROFILE_COSTMATRIX)

	within := profile.Defaults()
	within[2].ExpandWithinDistance = 3000

	exceeding := profile.Defaults()
	exceeding[1].MaxUpTransitions = 1000
	exceeding[2].ExpandWithinDistance = 20000

	clamped := profile.Defaults()

	factory := NewFactory()
	methodWith := func(mode string, limits *HierarchyLimits) CostingMethod {
		mc, m, err := factory.CreateModeCosting(RequestOptions{
			Costing:        mode,
			CostingOptions: map[string]Options{mode: {HierarchyLimits: limits}},
		})
		require.NoError(t, err)
		return mc[m]
	}

	testCases := []struct {
		name    string
		method  CostingMethod
		strict  bool
		want    HierarchyLimits
		wantErr bool
	}{
		{name: "method without hierarchy skipping", method: methodWith("pedestrian", &exceeding), strict: true,
			want: UnlimitedHierarchyLimits()},
		{name: "no user limits use profile defaults", method: methodWith("auto", nil), strict: true,
			want: profile.Defaults()},
		{name: "user limits within maxima", method: methodWith("auto", &within), strict: true, want: within},
		{name: "strict rejects limits above maxima", method: methodWith("auto", &exceeding), strict: true,
			wantErr: true},
		{name: "permissive clamps limits", method: methodWith("bicycle", &exceeding), strict: false,
			want: clamped},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.method.GetHierarchyLimits()
			got, err := ValidateHierarchyLimits(tt.method.GetHierarchyLimits(), tt.method, profile, tt.strict)
			assert.Equal(t, before, tt.method.GetHierarchyLimits())
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrHierarchyLimitsExceeded))
				assert.True(t, errors.Is(err, util.ErrConfiguration))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			applied := tt.method.WithHierarchyLimits(got)
			assert.Equal(t, got, applied.GetHierarchyLimits())
		})
	}
}

func TestStopExpanding(t *testing.T) {
	limits := DefaultHierarchyLimitsConfig(PROFILE_COSTMATRIX).Defaults()
	assert.False(t, limits.StopExpanding(2, 4999))
	assert.True(t, limits.StopExpanding(2, 5001))
	assert.False(t, limits.StopExpanding(0, 5001))
	assert.True(t, UnlimitedHierarchyLimits().IsUnlimited())
	assert.False(t, limits.IsUnlimited())
	assert.True(t, DefaultHierarchyLimitsConfig(PROFILE_TIMEDISTANCEMATRIX).Defaults().IsUnlimited())
}
