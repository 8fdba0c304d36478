package optimizer

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nearest neighbor from 0 goes 0 -> 1 -> 3 -> 2, the best tour is 0 -> 2 -> 1 -> 3
var trapCosts = []float64{
	0, 1, 2, 9,
	9, 0, 9, 1,
	9, 1, 0, 9,
	1, 9, 9, 0,
}

func randomCosts(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	costs := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			costs[i*n+j] = float64(rng.Intn(1000) + 1)
			if rng.Intn(20) == 0 {
				costs[i*n+j] = pkg.UNREACHED
			}
		}
	}
	return costs
}

func isPermutation(n int, tour []int) bool {
	if len(tour) != n {
		return false
	}
	sorted := append([]int(nil), tour...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			return false
		}
	}
	return true
}

func TestSolveExactTours(t *testing.T) {
	testCases := []struct {
		name   string
		n      int
		costs  []float64
		closed bool
		want   []int
	}{
		{name: "directed cycle", n: 4, closed: true, want: []int{0, 1, 2, 3}, costs: []float64{
			0, 1, 10, 10,
			10, 0, 1, 10,
			10, 10, 0, 1,
			1, 10, 10, 0,
		}},
		{name: "or-opt escapes greedy trap closed", n: 4, closed: true, costs: trapCosts, want: []int{0, 2, 1, 3}},
		{name: "or-opt escapes greedy trap open", n: 4, closed: false, costs: trapCosts, want: []int{0, 2, 1, 3}},
		{name: "unreachable legs are avoided", n: 3, closed: true, want: []int{0, 2, 1}, costs: []float64{
			0, pkg.UNREACHED, 5,
			2, 0, pkg.UNREACHED,
			pkg.UNREACHED, 3, 0,
		}},
		{name: "single point", n: 1, closed: true, costs: []float64{0}, want: []int{0}},
		{name: "no points", n: 0, closed: false, costs: []float64{}, want: []int{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got []int
				err error
			)
			if tt.closed {
				got, err = Solve(tt.n, tt.costs)
			} else {
				got, err = SolveOpen(tt.n, tt.costs)
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTourCost(t *testing.T) {
	assert.Equal(t, 20.0, TourCost(4, trapCosts, []int{0, 1, 3, 2}, true))
	assert.Equal(t, 5.0, TourCost(4, trapCosts, []int{0, 2, 1, 3}, true))
	assert.Equal(t, 4.0, TourCost(4, trapCosts, []int{0, 2, 1, 3}, false))
}

func TestSolvePermutationAndDeterminism(t *testing.T) {
	for _, n := range []int{2, 3, 5, 8, 13, 30} {
		costs := randomCosts(n, int64(n))
		for _, closed := range []bool{true, false} {
			opt := New(DefaultOptions())
			first, err := opt.solve(n, costs, closed)
			require.NoError(t, err)
			assert.True(t, isPermutation(n, first), "n=%d tour=%v", n, first)
			assert.Equal(t, 0, first[0])

			second, err := opt.solve(n, costs, closed)
			require.NoError(t, err)
			assert.Equal(t, first, second)

			ls := newLocalSearch(n, costs, closed)
			ls.nearestNeighbor()
			assert.LessOrEqual(t, TourCost(n, costs, first, closed), ls.cost())
		}
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	testCases := []struct {
		name  string
		n     int
		costs []float64
	}{
		{name: "too short", n: 3, costs: make([]float64, 8)},
		{name: "too long", n: 2, costs: make([]float64, 5)},
		{name: "negative n", n: -1, costs: []float64{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.n, tt.costs)
			assert.True(t, errors.Is(err, ErrDimensionMismatch))
			_, err = SolveOpen(tt.n, tt.costs)
			assert.True(t, errors.Is(err, ErrDimensionMismatch))
		})
	}
}

func TestMaxPassesBound(t *testing.T) {
	costs := randomCosts(20, 7)
	tour, err := New(Options{MaxPasses: 1}).Solve(20, costs)
	require.NoError(t, err)
	assert.True(t, isPermutation(20, tour))
}
