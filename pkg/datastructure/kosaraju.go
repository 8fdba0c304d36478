package datastructure

// RunKosaraju. strongly connected components of the subgraph of edges accessible with mask.
// returns the component id of every vertex & the number of components.
func (g *Graph) RunKosaraju(mask AccessMask) ([]Index, int) {
	n := g.NumberOfVertices()

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := 0; v < n; v++ {
		if !visited[v] {
			g.dfs(Index(v), mask, visited, false, func(u Index) {
				order = append(order, u)
			})
		}
	}

	// reset visited
	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := 0
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if visited[v] {
			continue
		}
		component := Index(numComponents)
		g.dfs(v, mask, visited, true, func(u Index) {
			sccs[u] = component
		})
		numComponents++
	}
	return sccs, numComponents
}

// dfs. iterative depth first search from v, finished is called in post-order.
// the reversed search follows inEdges.
func (g *Graph) dfs(v Index, mask AccessMask, visited []bool, reversed bool, finished func(u Index)) {
	type frame struct {
		u    Index
		next Index // next edge position of u to explore
	}

	first := func(u Index) Index {
		if reversed {
			return g.vertices[u].firstIn
		}
		return g.vertices[u].firstOut
	}

	visited[v] = true
	stack := []frame{{u: v, next: first(v)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		var (
			end  Index
			w    Index
			edge *edgeAttributes
		)
		if reversed {
			end = g.endIn(top.u)
		} else {
			end = g.endOut(top.u)
		}
		if top.next == end {
			finished(top.u)
			stack = stack[:len(stack)-1]
			continue
		}

		if reversed {
			e := g.inEdges[top.next]
			w, edge = e.GetTail(), &e.edgeAttributes
		} else {
			e := g.outEdges[top.next]
			w, edge = e.GetHead(), &e.edgeAttributes
		}
		top.next++

		if !edge.IsAccessible(mask) || visited[w] {
			continue
		}
		visited[w] = true
		stack = append(stack, frame{u: w, next: first(w)})
	}
}

// largestComponent. component id with the most vertices, lowest id on ties
func largestComponent(sccs []Index, numComponents int) Index {
	sizes := make([]int, numComponents)
	for _, c := range sccs {
		sizes[c]++
	}
	best := Index(0)
	for c := 1; c < numComponents; c++ {
		if sizes[c] > sizes[best] {
			best = Index(c)
		}
	}
	return best
}

// PruneToLargestSCC. subgraph of vertices that lie in the largest strongly connected component of at least one
// of masks, so that snapped locations are not stranded on road islands. vertex ids are renumbered, osm ids kept.
// edges are kept when both endpoints are kept.
func (g *Graph) PruneToLargestSCC(masks ...AccessMask) *Graph {
	n := g.NumberOfVertices()
	keep := make([]bool, n)
	for _, mask := range masks {
		sccs, numComponents := g.RunKosaraju(mask)
		if numComponents == 0 {
			continue
		}
		largest := largestComponent(sccs, numComponents)
		for v := 0; v < n; v++ {
			if sccs[v] == largest {
				keep[v] = true
			}
		}
	}

	gb := NewGraphBuilder()
	newId := make([]Index, n)
	for v := 0; v < n; v++ {
		if keep[v] {
			vert := g.vertices[v]
			newId[v] = gb.AddVertex(vert.lat, vert.lon, vert.osmId)
		}
	}
	g.ForOutEdges(func(e *OutEdge, tail Index) {
		if keep[tail] && keep[e.GetHead()] {
			gb.AddEdge(newId[tail], newId[e.GetHead()], e.GetLength(), e.GetEdgeSpeed(), e.GetHighwayType(),
				e.GetAccess())
		}
	})
	return gb.Build()
}
