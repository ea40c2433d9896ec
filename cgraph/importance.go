package cgraph

import (
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Importance holds the structural metrics for one discipline.
type Importance struct {
	ID   DisciplineID
	Name string

	// OutDegree is the number of disciplines directly unlocked.
	OutDegree int

	// Descendants is the size of the forward reachable closure: how many
	// disciplines this one unlocks directly or indirectly. The node
	// itself is excluded and each descendant counts once, however many
	// paths lead to it.
	Descendants int

	// Betweenness is directed betweenness centrality, normalized by
	// (n-1)(n-2). Zero for graphs with fewer than three nodes.
	Betweenness float64
}

// AnalyzeImportance computes per-node importance metrics and returns
// them sorted by descending (Descendants, Betweenness). Rows that tie
// on both keys stay in ascending id order.
//
// Betweenness uses Brandes' algorithm; single-source accumulations are
// independent, so they run on one goroutine per CPU.
func (g *Graph) AnalyzeImportance() []Importance {
	ids := g.SortedNodeIDs()
	n := len(ids)
	if n == 0 {
		return nil
	}

	index := make(map[DisciplineID]int, n)
	for i, id := range ids {
		index[id] = i
	}
	adj := make([][]int, n)
	for i, id := range ids {
		children := g.nodes[id].Children
		out := make([]int, 0, len(children))
		for _, c := range children {
			out = append(out, index[c])
		}
		slices.Sort(out)
		adj[i] = out
	}

	betweenness := brandes(n, adj)

	rows := make([]Importance, n)
	for i, id := range ids {
		node := g.nodes[id]
		rows[i] = Importance{
			ID:          id,
			Name:        node.Name,
			OutDegree:   len(node.Children),
			Descendants: countDescendants(i, adj),
			Betweenness: betweenness[i],
		}
	}

	slices.SortStableFunc(rows, func(a, b Importance) int {
		if a.Descendants != b.Descendants {
			return b.Descendants - a.Descendants
		}
		switch {
		case a.Betweenness > b.Betweenness:
			return -1
		case a.Betweenness < b.Betweenness:
			return 1
		default:
			return 0
		}
	})
	return rows
}

// countDescendants walks the forward closure of v iteratively and
// returns its size, v excluded.
func countDescendants(v int, adj [][]int) int {
	visited := make([]bool, len(adj))
	visited[v] = true
	stack := []int{v}
	count := 0
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range adj[u] {
			if !visited[w] {
				visited[w] = true
				count++
				stack = append(stack, w)
			}
		}
	}
	return count
}

// brandes computes normalized directed betweenness centrality. One
// shortest-path BFS plus back-propagation per source; sources are
// distributed across CPUs and the per-source contributions merged under
// a lock.
func brandes(n int, adj [][]int) []float64 {
	cb := make([]float64, n)
	if n < 3 {
		return cb
	}

	var mu sync.Mutex
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for s := 0; s < n; s++ {
		s := s
		eg.Go(func() error {
			local := brandesFromSource(s, n, adj)
			mu.Lock()
			for i, v := range local {
				cb[i] += v
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers never fail; Wait only synchronizes.
	_ = eg.Wait()

	norm := float64((n - 1) * (n - 2))
	for i := range cb {
		cb[i] /= norm
	}
	return cb
}

// brandesFromSource runs the BFS and accumulation phases of Brandes'
// algorithm for a single source and returns its pair-dependency
// contributions.
func brandesFromSource(s, n int, adj [][]int) []float64 {
	visitOrder := make([]int, 0, n)
	sigma := make([]float64, n)
	dist := make([]int, n)
	pred := make([][]int, n)
	for i := range dist {
		dist[i] = -1
	}
	sigma[s] = 1
	dist[s] = 0

	queue := []int{s}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		visitOrder = append(visitOrder, v)
		for _, w := range adj[v] {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	contrib := make([]float64, n)
	delta := make([]float64, n)
	for i := len(visitOrder) - 1; i >= 0; i-- {
		w := visitOrder[i]
		for _, v := range pred[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != s {
			contrib[w] += delta[w]
		}
	}
	return contrib
}
