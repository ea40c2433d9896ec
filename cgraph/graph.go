package cgraph

import (
	"fmt"
	"slices"
	"strings"
)

// DisciplineID is a strongly-typed identifier for graph nodes.
// DisciplineIDs must be non-empty and cannot contain whitespace.
type DisciplineID string

// Validate checks if the DisciplineID is valid.
// Returns ErrInvalidDisciplineID if the ID is empty or contains whitespace.
func (id DisciplineID) Validate() error {
	if id == "" {
		return fmt.Errorf("%w: DisciplineID cannot be empty", ErrInvalidDisciplineID)
	}
	if strings.ContainsAny(string(id), " \t\n\r") {
		return fmt.Errorf("%w: DisciplineID %q cannot contain whitespace", ErrInvalidDisciplineID, id)
	}
	return nil
}

// Discipline is the flat input record for one curriculum unit.
type Discipline struct {
	ID       DisciplineID
	Name     string
	CourseID string
}

// PrerequisiteEdge is a directed dependency: Prerequisite must be
// completed before Dependent can be taken.
type PrerequisiteEdge struct {
	Prerequisite DisciplineID
	Dependent    DisciplineID
}

// Dataset is the flat curriculum snapshot supplied by the persistence
// layer: all disciplines plus all declared prerequisite pairs.
type Dataset struct {
	Disciplines   []Discipline
	Prerequisites []PrerequisiteEdge
}

// WarningKind classifies structural warnings found during graph
// construction. Warnings are non-fatal: the graph stays usable.
type WarningKind int

const (
	// WarningDanglingEdge means an edge referenced an unknown node and
	// was skipped.
	WarningDanglingEdge WarningKind = iota
	// WarningDuplicateEdge means the same (prerequisite, dependent) pair
	// was declared more than once; only the first occurrence is kept.
	WarningDuplicateEdge
	// WarningSelfPrerequisite means an edge declared a discipline as its
	// own prerequisite; the edge was skipped.
	WarningSelfPrerequisite
)

func (k WarningKind) String() string {
	switch k {
	case WarningDanglingEdge:
		return "dangling edge"
	case WarningDuplicateEdge:
		return "duplicate edge"
	case WarningSelfPrerequisite:
		return "self prerequisite"
	default:
		return "unknown"
	}
}

// Warning describes one structural defect found while building a graph.
type Warning struct {
	Kind WarningKind
	Edge PrerequisiteEdge

	// Missing is set for dangling edges: the id the edge referenced but
	// no discipline declares.
	Missing DisciplineID
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningDanglingEdge:
		return fmt.Sprintf("dangling edge %s -> %s: unknown discipline %s",
			w.Edge.Prerequisite, w.Edge.Dependent, w.Missing)
	case WarningDuplicateEdge:
		return fmt.Sprintf("duplicate edge %s -> %s", w.Edge.Prerequisite, w.Edge.Dependent)
	case WarningSelfPrerequisite:
		return fmt.Sprintf("discipline %s declared as its own prerequisite", w.Edge.Dependent)
	default:
		return fmt.Sprintf("unknown warning for edge %s -> %s", w.Edge.Prerequisite, w.Edge.Dependent)
	}
}

// Node is the in-graph representation of a discipline.
type Node struct {
	ID       DisciplineID
	Name     string
	CourseID string

	// Parents are direct prerequisites (incoming edges).
	Parents []DisciplineID

	// Children are direct dependents (outgoing edges).
	Children []DisciplineID
}

// Graph is an immutable directed prerequisite graph. Edges point from a
// prerequisite to its dependents. After Build it is never mutated, so it
// is safe for concurrent readers.
type Graph struct {
	nodes map[DisciplineID]*Node

	// Deterministic node ordering (insertion order).
	order []DisciplineID

	warnings []Warning
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns the node for id, if present.
func (g *Graph) Node(id DisciplineID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether id is a known discipline.
func (g *Graph) HasNode(id DisciplineID) bool {
	_, ok := g.nodes[id]
	return ok
}

// NodeIDs returns all node ids in insertion order. The slice is a copy.
func (g *Graph) NodeIDs() []DisciplineID {
	return slices.Clone(g.order)
}

// SortedNodeIDs returns all node ids in ascending order. The slice is a copy.
func (g *Graph) SortedNodeIDs() []DisciplineID {
	ids := slices.Clone(g.order)
	slices.Sort(ids)
	return ids
}

// Name returns the display name for id, or the id itself if unknown.
func (g *Graph) Name(id DisciplineID) string {
	if n, ok := g.nodes[id]; ok {
		return n.Name
	}
	return string(id)
}

// Successors returns the direct dependents of id.
func (g *Graph) Successors(id DisciplineID) []DisciplineID {
	if n, ok := g.nodes[id]; ok {
		return n.Children
	}
	return nil
}

// Predecessors returns the direct prerequisites of id.
func (g *Graph) Predecessors(id DisciplineID) []DisciplineID {
	if n, ok := g.nodes[id]; ok {
		return n.Parents
	}
	return nil
}

// Warnings returns the structural warnings recorded during construction.
func (g *Graph) Warnings() []Warning {
	return g.warnings
}
