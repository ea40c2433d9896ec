package cgraph

import "slices"

// DetectCycles enumerates all elementary cycles in the graph using
// Johnson's algorithm. Each cycle is returned as a closed walk: the
// list of ids in cycle order with the first id repeated at the end.
// Cycles are rotated to start at their smallest member id and the
// result is sorted, so output is fully deterministic.
//
// An empty result means the graph is a DAG. A non-empty result is a
// structural warning about the curriculum data, not an error; every
// other operation remains usable on a cyclic graph.
//
// All traversal is iterative with explicit stacks, so arbitrarily deep
// or cyclic inputs cannot overflow the call stack.
func (g *Graph) DetectCycles() [][]DisciplineID {
	ids := g.SortedNodeIDs()
	n := len(ids)
	if n == 0 {
		return nil
	}

	index := make(map[DisciplineID]int, n)
	for i, id := range ids {
		index[id] = i
	}

	// Successor lists as sorted index slices.
	adj := make([][]int, n)
	all := make([]int, n)
	for i, id := range ids {
		all[i] = i
		children := g.nodes[id].Children
		out := make([]int, 0, len(children))
		for _, c := range children {
			out = append(out, index[c])
		}
		slices.Sort(out)
		adj[i] = out
	}

	search := &cycleSearch{n: n, adj: adj}

	// Johnson's scheme: take a strongly connected component, enumerate
	// every cycle through its smallest vertex, remove that vertex and
	// re-decompose what remains. Self-loops cannot exist (rejected at
	// build time), so single-vertex components carry no cycles.
	var cycles [][]int
	regions := search.nontrivialSCCs(all)
	for len(regions) > 0 {
		region := regions[len(regions)-1]
		regions = regions[:len(regions)-1]

		s := slices.Min(region)
		cycles = append(cycles, search.circuits(s, region)...)

		rest := make([]int, 0, len(region)-1)
		for _, v := range region {
			if v != s {
				rest = append(rest, v)
			}
		}
		regions = append(regions, search.nontrivialSCCs(rest)...)
	}

	walks := make([][]DisciplineID, 0, len(cycles))
	for _, cycle := range cycles {
		walk := make([]DisciplineID, 0, len(cycle)+1)
		for _, v := range cycle {
			walk = append(walk, ids[v])
		}
		walk = append(walk, ids[cycle[0]])
		walks = append(walks, walk)
	}
	slices.SortFunc(walks, slices.Compare)
	return walks
}

// IsDAG reports whether the graph contains no cycles. It runs a plain
// back-edge check, so it is cheaper than DetectCycles when the cycles
// themselves are not needed.
func (g *Graph) IsDAG() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[DisciplineID]int, len(g.nodes))

	type frame struct {
		id   DisciplineID
		next int
	}

	for _, start := range g.order {
		if color[start] != white {
			continue
		}
		stack := []frame{{id: start}}
		color[start] = gray
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			children := g.nodes[f.id].Children
			if f.next < len(children) {
				child := children[f.next]
				f.next++
				switch color[child] {
				case white:
					color[child] = gray
					stack = append(stack, frame{id: child})
				case gray:
					return false
				}
				continue
			}
			color[f.id] = black
			stack = stack[:len(stack)-1]
		}
	}
	return true
}

// cycleSearch carries the shared state for one DetectCycles run.
type cycleSearch struct {
	n   int
	adj [][]int
}

// nontrivialSCCs returns the strongly connected components of the
// subgraph induced by the given vertex set, keeping only components
// with at least two members. Iterative Tarjan.
func (c *cycleSearch) nontrivialSCCs(region []int) [][]int {
	if len(region) < 2 {
		return nil
	}
	in := make([]bool, c.n)
	for _, v := range region {
		in[v] = true
	}

	index := make([]int, c.n)
	lowlink := make([]int, c.n)
	onStack := make([]bool, c.n)
	for _, v := range region {
		index[v] = -1
	}

	counter := 0
	var tarjanStack []int
	var components [][]int

	type frame struct {
		v    int
		next int
	}

	roots := slices.Clone(region)
	slices.Sort(roots)
	for _, root := range roots {
		if index[root] != -1 {
			continue
		}
		stack := []frame{{v: root}}
		index[root] = counter
		lowlink[root] = counter
		counter++
		tarjanStack = append(tarjanStack, root)
		onStack[root] = true

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			advanced := false
			for f.next < len(c.adj[f.v]) {
				w := c.adj[f.v][f.next]
				f.next++
				if !in[w] {
					continue
				}
				if index[w] == -1 {
					index[w] = counter
					lowlink[w] = counter
					counter++
					tarjanStack = append(tarjanStack, w)
					onStack[w] = true
					stack = append(stack, frame{v: w})
					advanced = true
					break
				}
				if onStack[w] && index[w] < lowlink[f.v] {
					lowlink[f.v] = index[w]
				}
			}
			if advanced {
				continue
			}

			v := f.v
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if lowlink[v] < lowlink[parent.v] {
					lowlink[parent.v] = lowlink[v]
				}
			}
			if lowlink[v] == index[v] {
				var scc []int
				for {
					w := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				if len(scc) >= 2 {
					components = append(components, scc)
				}
			}
		}
	}

	return components
}

// circuits enumerates all elementary cycles through s that stay inside
// the given strongly connected component. Johnson's blocked-set search,
// unrolled onto an explicit stack.
func (c *cycleSearch) circuits(s int, scc []int) [][]int {
	inSCC := make([]bool, c.n)
	for _, v := range scc {
		inSCC[v] = true
	}

	blocked := make([]bool, c.n)
	blockList := make([][]int, c.n)

	unblock := func(v int) {
		pending := []int{v}
		for len(pending) > 0 {
			u := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			if !blocked[u] {
				continue
			}
			blocked[u] = false
			pending = append(pending, blockList[u]...)
			blockList[u] = nil
		}
	}

	type frame struct {
		v     int
		next  int
		found bool
	}

	var cycles [][]int
	path := []int{s}
	blocked[s] = true
	stack := []frame{{v: s}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		advanced := false
		for f.next < len(c.adj[f.v]) {
			w := c.adj[f.v][f.next]
			f.next++
			if !inSCC[w] {
				continue
			}
			if w == s {
				cycle := make([]int, len(path))
				copy(cycle, path)
				cycles = append(cycles, cycle)
				f.found = true
				continue
			}
			if !blocked[w] {
				path = append(path, w)
				blocked[w] = true
				stack = append(stack, frame{v: w})
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}

		v, found := f.v, f.found
		stack = stack[:len(stack)-1]
		path = path[:len(path)-1]
		if found {
			unblock(v)
		} else {
			for _, w := range c.adj[v] {
				if !inSCC[w] {
					continue
				}
				if !slices.Contains(blockList[w], v) {
					blockList[w] = append(blockList[w], v)
				}
			}
		}
		if len(stack) > 0 && found {
			stack[len(stack)-1].found = true
		}
	}

	return cycles
}
