package cgraph

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		g := mustBuild(t, Dataset{})
		assert.Equal(t, 0, len(g.DetectCycles()))
		assert.True(t, g.IsDAG())
	})

	t.Run("acyclic diamond", func(t *testing.T) {
		g := mustBuild(t, diamondDataset())
		assert.Equal(t, 0, len(g.DetectCycles()))
		assert.True(t, g.IsDAG())
	})

	t.Run("two node cycle", func(t *testing.T) {
		g := mustBuild(t, twoCycleDataset())
		cycles := g.DetectCycles()
		assert.Equal(t, [][]DisciplineID{{"A", "B", "A"}}, cycles)
		assert.False(t, g.IsDAG())
	})

	t.Run("three node cycle rotated to smallest id", func(t *testing.T) {
		g := mustBuild(t, Dataset{
			Disciplines: []Discipline{disc("A"), disc("B"), disc("C")},
			Prerequisites: []PrerequisiteEdge{
				edge("B", "C"),
				edge("C", "A"),
				edge("A", "B"),
			},
		})
		assert.Equal(t, [][]DisciplineID{{"A", "B", "C", "A"}}, g.DetectCycles())
	})

	t.Run("two disjoint cycles ordered by smallest member", func(t *testing.T) {
		g := mustBuild(t, Dataset{
			Disciplines: []Discipline{disc("A"), disc("B"), disc("C"), disc("D")},
			Prerequisites: []PrerequisiteEdge{
				edge("C", "D"),
				edge("D", "C"),
				edge("A", "B"),
				edge("B", "A"),
			},
		})
		assert.Equal(t, [][]DisciplineID{
			{"A", "B", "A"},
			{"C", "D", "C"},
		}, g.DetectCycles())
	})

	t.Run("two cycles sharing a node", func(t *testing.T) {
		// A <-> B and A <-> C, all in one strongly connected component.
		g := mustBuild(t, Dataset{
			Disciplines: []Discipline{disc("A"), disc("B"), disc("C")},
			Prerequisites: []PrerequisiteEdge{
				edge("A", "B"),
				edge("B", "A"),
				edge("A", "C"),
				edge("C", "A"),
			},
		})
		assert.Equal(t, [][]DisciplineID{
			{"A", "B", "A"},
			{"A", "C", "A"},
		}, g.DetectCycles())
	})

	t.Run("nested cycles enumerated separately", func(t *testing.T) {
		// A -> B -> C -> A and the chord B -> A give two elementary
		// cycles: [A B A] and [A B C A].
		g := mustBuild(t, Dataset{
			Disciplines: []Discipline{disc("A"), disc("B"), disc("C")},
			Prerequisites: []PrerequisiteEdge{
				edge("A", "B"),
				edge("B", "C"),
				edge("C", "A"),
				edge("B", "A"),
			},
		})
		assert.Equal(t, [][]DisciplineID{
			{"A", "B", "A"},
			{"A", "B", "C", "A"},
		}, g.DetectCycles())
	})

	t.Run("cycle plus dag tail", func(t *testing.T) {
		// The tail hanging off the cycle must not appear in any cycle.
		g := mustBuild(t, Dataset{
			Disciplines: []Discipline{disc("A"), disc("B"), disc("T")},
			Prerequisites: []PrerequisiteEdge{
				edge("A", "B"),
				edge("B", "A"),
				edge("B", "T"),
			},
		})
		assert.Equal(t, [][]DisciplineID{{"A", "B", "A"}}, g.DetectCycles())
	})

	t.Run("deep chain does not overflow", func(t *testing.T) {
		// Much deeper than any default goroutine recursion budget would
		// survive if traversal were recursive.
		const depth = 200_000
		ds := Dataset{}
		prev := DisciplineID("")
		for i := 0; i < depth; i++ {
			id := DisciplineID(padded(i))
			ds.Disciplines = append(ds.Disciplines, disc(id))
			if prev != "" {
				ds.Prerequisites = append(ds.Prerequisites, edge(prev, id))
			}
			prev = id
		}
		// Close the chain into one huge cycle.
		ds.Prerequisites = append(ds.Prerequisites, edge(prev, ds.Disciplines[0].ID))

		g := mustBuild(t, ds)
		assert.False(t, g.IsDAG())
		cycles := g.DetectCycles()
		assert.Equal(t, 1, len(cycles))
		assert.Equal(t, depth+1, len(cycles[0]))
	})
}

// padded renders i with enough leading zeros that lexicographic and
// numeric order agree.
func padded(i int) string {
	const digits = "0123456789"
	buf := [7]byte{}
	for p := len(buf) - 1; p >= 0; p-- {
		buf[p] = digits[i%10]
		i /= 10
	}
	return string(buf[:])
}
