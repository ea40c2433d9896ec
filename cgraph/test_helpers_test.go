package cgraph

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// mustBuild builds a graph from a dataset and fails the test on error.
func mustBuild(t *testing.T, ds Dataset) *Graph {
	t.Helper()
	g, err := Build(ds)
	assert.NoError(t, err)
	return g
}

// disc is a shorthand for a discipline row named after its id.
func disc(id DisciplineID) Discipline {
	return Discipline{ID: id, Name: string(id)}
}

// edge is a shorthand for a prerequisite pair.
func edge(prereq, dependent DisciplineID) PrerequisiteEdge {
	return PrerequisiteEdge{Prerequisite: prereq, Dependent: dependent}
}

// diamondDataset is the shared fixture:
//
//	A -> B -> D
//	A -> C -> D
//
// A unlocks everything, D requires both middle disciplines.
func diamondDataset() Dataset {
	return Dataset{
		Disciplines: []Discipline{disc("A"), disc("B"), disc("C"), disc("D")},
		Prerequisites: []PrerequisiteEdge{
			edge("A", "B"),
			edge("A", "C"),
			edge("B", "D"),
			edge("C", "D"),
		},
	}
}

// chainDataset is A -> B -> C -> D.
func chainDataset() Dataset {
	return Dataset{
		Disciplines: []Discipline{disc("A"), disc("B"), disc("C"), disc("D")},
		Prerequisites: []PrerequisiteEdge{
			edge("A", "B"),
			edge("B", "C"),
			edge("C", "D"),
		},
	}
}

// twoCycleDataset is A <-> B.
func twoCycleDataset() Dataset {
	return Dataset{
		Disciplines: []Discipline{disc("A"), disc("B")},
		Prerequisites: []PrerequisiteEdge{
			edge("A", "B"),
			edge("B", "A"),
		},
	}
}
