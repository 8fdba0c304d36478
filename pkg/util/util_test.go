package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	errNoRoad := errors.New("no road")

	testCases := []struct {
		name    string
		err     error
		target  error
		wantIs  bool
		wantMsg string
	}{
		{name: "matches code", err: WrapErrorf(errNoRoad, ErrNotFound, "location %d", 3), target: ErrNotFound,
			wantIs: true, wantMsg: "location 3: no road"},
		{name: "matches wrapped error", err: WrapErrorf(errNoRoad, ErrNotFound, "location %d", 3), target: errNoRoad,
			wantIs: true, wantMsg: "location 3: no road"},
		{name: "other code", err: WrapErrorf(errNoRoad, ErrNotFound, "location"), target: ErrBadParamInput,
			wantIs: false, wantMsg: "location: no road"},
		{name: "without original error", err: WrapErrorf(nil, ErrConfiguration, "missing limits"),
			target: ErrConfiguration, wantIs: true, wantMsg: "missing limits"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantIs, errors.Is(tt.err, tt.target))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestReverseG(t *testing.T) {
	arr := []int{1, 2, 3, 4}
	assert.Equal(t, []int{4, 3, 2, 1}, ReverseG(arr))
	assert.Equal(t, []int{1, 2, 3, 4}, arr)
	assert.Empty(t, ReverseG([]int{}))
}

func TestMinMaxG(t *testing.T) {
	assert.Equal(t, 2, MinG(2, 5))
	assert.Equal(t, uint32(5), MaxG(uint32(2), uint32(5)))
	assert.Equal(t, -1.5, MinG(-1.5, 0.0))
}
