package optimizer

import (
	"errors"

	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
)

var ErrDimensionMismatch = errors.New("cost matrix length must be n*n")

const (
	DefaultMaxPasses = 100
	maxOrOptSegment  = 3
)

type Options struct {
	// rounds of 2-opt + or-opt local search. a round ends when neither move type improves the tour.
	MaxPasses int
}

func DefaultOptions() Options {
	return Options{MaxPasses: DefaultMaxPasses}
}

// Optimizer. visiting order over n points from a row-major n x n cost matrix, costs[i*n+j] = cost of leg i -> j.
// legs with a negative cost (pkg.UNREACHED) are treated as pkg.INF_WEIGHT.
// every tour starts at point 0, deterministic for a given matrix.
type Optimizer struct {
	opts Options
}

func New(opts Options) *Optimizer {
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}
	return &Optimizer{opts: opts}
}

// Solve. closed tour 0 -> ... -> 0
func Solve(n int, costs []float64) ([]int, error) {
	return New(DefaultOptions()).Solve(n, costs)
}

// SolveOpen. open path starting at 0, no return leg
func SolveOpen(n int, costs []float64) ([]int, error) {
	return New(DefaultOptions()).SolveOpen(n, costs)
}

func (o *Optimizer) Solve(n int, costs []float64) ([]int, error) {
	return o.solve(n, costs, true)
}

func (o *Optimizer) SolveOpen(n int, costs []float64) ([]int, error) {
	return o.solve(n, costs, false)
}

func (o *Optimizer) solve(n int, costs []float64, closed bool) ([]int, error) {
	if n < 0 || len(costs) != n*n {
		return nil, util.WrapErrorf(ErrDimensionMismatch, util.ErrInternalServerError,
			"got %d costs for %d points", len(costs), n)
	}
	if n == 0 {
		return []int{}, nil
	}

	ls := newLocalSearch(n, costs, closed)
	ls.nearestNeighbor()
	for pass := 0; pass < o.opts.MaxPasses; pass++ {
		improved := ls.twoOpt()
		if ls.orOpt() {
			improved = true
		}
		if !improved {
			break
		}
	}
	return ls.tour, nil
}

// TourCost. total cost of a tour, closed adds the leg back to tour[0]
func TourCost(n int, costs []float64, tour []int, closed bool) float64 {
	ls := newLocalSearch(n, costs, closed)
	ls.tour = tour
	return ls.cost()
}

type localSearch struct {
	n      int
	costs  []float64
	closed bool
	tour   []int

	// prefix sums along the tour, fwd[x] = sum of legs tour[y] -> tour[y+1] for y < x, bwd the reversed legs
	fwd []float64
	bwd []float64
}

func newLocalSearch(n int, costs []float64, closed bool) *localSearch {
	return &localSearch{
		n:      n,
		costs:  costs,
		closed: closed,
		fwd:    make([]float64, n),
		bwd:    make([]float64, n),
	}
}

func (ls *localSearch) leg(i, j int) float64 {
	if i == j {
		return 0
	}
	c := ls.costs[i*ls.n+j]
	if c < 0 {
		return pkg.INF_WEIGHT
	}
	return c
}

func (ls *localSearch) cost() float64 {
	total := 0.0
	for x := 0; x+1 < len(ls.tour); x++ {
		total += ls.leg(ls.tour[x], ls.tour[x+1])
	}
	if ls.closed && len(ls.tour) > 1 {
		total += ls.leg(ls.tour[len(ls.tour)-1], ls.tour[0])
	}
	return total
}

// successor of tour position x, -1 if x is the end of an open path
func (ls *localSearch) next(x int) int {
	if x+1 < ls.n {
		return ls.tour[x+1]
	}
	if ls.closed {
		return ls.tour[0]
	}
	return -1
}

func (ls *localSearch) edge(u, v int) float64 {
	if u < 0 || v < 0 {
		return 0
	}
	return ls.leg(u, v)
}

// nearestNeighbor. greedy construction from point 0, ties go to the lower index
func (ls *localSearch) nearestNeighbor() {
	visited := make([]bool, ls.n)
	ls.tour = make([]int, 0, ls.n)
	cur := 0
	visited[0] = true
	ls.tour = append(ls.tour, 0)
	for len(ls.tour) < ls.n {
		best := -1
		bestCost := 0.0
		for j := 0; j < ls.n; j++ {
			if visited[j] {
				continue
			}
			if c := ls.leg(cur, j); best == -1 || c < bestCost {
				best, bestCost = j, c
			}
		}
		visited[best] = true
		ls.tour = append(ls.tour, best)
		cur = best
	}
	ls.updatePrefix()
}

func (ls *localSearch) updatePrefix() {
	for x := 1; x < ls.n; x++ {
		ls.fwd[x] = ls.fwd[x-1] + ls.leg(ls.tour[x-1], ls.tour[x])
		ls.bwd[x] = ls.bwd[x-1] + ls.leg(ls.tour[x], ls.tour[x-1])
	}
}

// twoOpt. reverse tour[i..k] while some reversal lowers the cost, first improvement.
// the reversed segment is traversed the other way, so its inner legs are priced in the reversed direction.
func (ls *localSearch) twoOpt() bool {
	improvedAny := false
	for moves := 0; moves < ls.n*ls.n; moves++ {
		if !ls.twoOptMove() {
			break
		}
		improvedAny = true
	}
	return improvedAny
}

func (ls *localSearch) twoOptMove() bool {
	for i := 1; i < ls.n-1; i++ {
		a := ls.tour[i-1]
		b := ls.tour[i]
		for k := i + 1; k < ls.n; k++ {
			c := ls.tour[k]
			d := ls.next(k)

			before := ls.leg(a, b) + (ls.fwd[k] - ls.fwd[i]) + ls.edge(c, d)
			after := ls.leg(a, c) + (ls.bwd[k] - ls.bwd[i]) + ls.edge(b, d)
			if after-before < -pkg.EPS {
				copy(ls.tour[i:k+1], util.ReverseG(ls.tour[i:k+1]))
				ls.updatePrefix()
				return true
			}
		}
	}
	return false
}

// orOpt. move a segment of 1..3 points to another position, keeping its direction.
func (ls *localSearch) orOpt() bool {
	improvedAny := false
	for moves := 0; moves < ls.n*ls.n; moves++ {
		if !ls.orOptMove() {
			break
		}
		improvedAny = true
	}
	return improvedAny
}

func (ls *localSearch) orOptMove() bool {
	for segLen := 1; segLen <= maxOrOptSegment; segLen++ {
		for i := 1; i+segLen <= ls.n; i++ {
			end := i + segLen - 1
			prev := ls.tour[i-1]
			first := ls.tour[i]
			last := ls.tour[end]
			after := ls.next(end)

			removeGain := ls.leg(prev, first) + ls.edge(last, after) - ls.edge(prev, after)

			for p := 0; p < ls.n; p++ {
				if p >= i-1 && p <= end {
					continue
				}
				u := ls.tour[p]
				v := ls.next(p)
				insertCost := ls.leg(u, first) + ls.edge(last, v) - ls.edge(u, v)
				if insertCost-removeGain < -pkg.EPS {
					ls.moveSegment(i, end, p)
					ls.updatePrefix()
					return true
				}
			}
		}
	}
	return false
}

// moveSegment. place tour[i..end] right after tour position p
func (ls *localSearch) moveSegment(i, end, p int) {
	segment := append([]int(nil), ls.tour[i:end+1]...)
	rest := make([]int, 0, ls.n-len(segment))
	rest = append(rest, ls.tour[:i]...)
	rest = append(rest, ls.tour[end+1:]...)

	insertAt := p + 1
	if p > end {
		insertAt = p + 1 - len(segment)
	}

	newTour := make([]int, 0, ls.n)
	newTour = append(newTour, rest[:insertAt]...)
	newTour = append(newTour, segment...)
	newTour = append(newTour, rest[insertAt:]...)
	ls.tour = newTour
}
