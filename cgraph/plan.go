package cgraph

import (
	"fmt"
	"slices"
	"sort"
)

// Plan is the result of PlanPath.
//
// An empty Order can mean two different things: nothing was requested
// (or everything requested is already completed), or no valid order
// exists because the induced subgraph is cyclic. Infeasible separates
// the two, so callers no longer have to guess from the target count.
type Plan struct {
	// Order lists the disciplines still to be taken, every one after all
	// of its prerequisites that also appear in the list. Nil when
	// Infeasible is true.
	Order []DisciplineID

	// Infeasible is true when the disciplines needed for the targets
	// contain a prerequisite cycle, so no valid order exists.
	Infeasible bool
}

// PlanPath computes a topologically valid order in which the student
// can complete the target disciplines. The plan covers the targets plus
// every transitive prerequisite still missing; disciplines in the
// completed set are excluded and not traversed past. Unknown target ids
// fail with ErrNodeNotFound.
//
// Kahn's algorithm with the ready queue kept sorted by ascending id, so
// the order is deterministic: whenever several disciplines are
// simultaneously unblocked, the smallest id comes first.
func (g *Graph) PlanPath(completed IDSet, targets []DisciplineID) (Plan, error) {
	for _, id := range targets {
		if !g.HasNode(id) {
			return Plan{}, fmt.Errorf("plan path: target %s: %w", id, ErrNodeNotFound)
		}
	}

	// Induced subgraph: targets and their transitive prerequisites,
	// minus completed disciplines. Completed nodes are not expanded; a
	// satisfied prerequisite pulls in nothing behind it.
	needed := make(IDSet)
	stack := make([]DisciplineID, 0, len(targets))
	for _, id := range targets {
		if !completed.Has(id) && !needed.Has(id) {
			needed[id] = true
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, prereq := range g.nodes[id].Parents {
			if completed.Has(prereq) || needed.Has(prereq) {
				continue
			}
			needed[prereq] = true
			stack = append(stack, prereq)
		}
	}
	if len(needed) == 0 {
		return Plan{Order: []DisciplineID{}}, nil
	}

	// Kahn over the subgraph; only edges between needed nodes count.
	inDegree := make(map[DisciplineID]int, len(needed))
	for id := range needed {
		degree := 0
		for _, prereq := range g.nodes[id].Parents {
			if needed.Has(prereq) {
				degree++
			}
		}
		inDegree[id] = degree
	}

	queue := make([]DisciplineID, 0, len(needed))
	for id, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, id)
		}
	}
	slices.Sort(queue)

	order := make([]DisciplineID, 0, len(needed))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, dependent := range g.nodes[id].Children {
			if !needed.Has(dependent) {
				continue
			}
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = insertSorted(queue, dependent)
			}
		}
	}

	// Nodes left unprocessed are on or behind a cycle.
	if len(order) != len(needed) {
		return Plan{Infeasible: true}, nil
	}
	return Plan{Order: order}, nil
}

// insertSorted inserts an id into a sorted slice maintaining sort
// order. Cheaper than re-sorting the queue on every unblock.
func insertSorted(slice []DisciplineID, id DisciplineID) []DisciplineID {
	idx := sort.Search(len(slice), func(i int) bool {
		return slice[i] >= id
	})
	return slices.Insert(slice, idx, id)
}
