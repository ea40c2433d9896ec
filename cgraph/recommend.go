package cgraph

import "slices"

// Recommendation is one discipline a student can take next.
type Recommendation struct {
	ID   DisciplineID
	Name string

	// Prereqs are the direct prerequisites, all of which the student has
	// completed. Sorted ascending.
	Prereqs []DisciplineID
}

// Recommend returns every discipline the student has not completed
// whose direct prerequisites are all in the completed set. A discipline
// with no prerequisites is always eligible unless already completed.
//
// Only direct predecessors matter here, so cycles elsewhere in the
// graph do not block the computation; members of a cycle simply never
// become eligible until the data is fixed.
//
// Results are sorted by ascending prerequisite count (fewest barriers
// first), ties broken by ascending id.
func (g *Graph) Recommend(completed IDSet) []Recommendation {
	var recs []Recommendation
	for _, id := range g.SortedNodeIDs() {
		if completed.Has(id) {
			continue
		}
		node := g.nodes[id]
		eligible := true
		for _, prereq := range node.Parents {
			if !completed.Has(prereq) {
				eligible = false
				break
			}
		}
		if !eligible {
			continue
		}
		prereqs := slices.Clone(node.Parents)
		slices.Sort(prereqs)
		recs = append(recs, Recommendation{ID: id, Name: node.Name, Prereqs: prereqs})
	}

	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return len(a.Prereqs) - len(b.Prereqs)
	})
	return recs
}
