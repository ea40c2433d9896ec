package cgraph

import (
	"errors"
	"fmt"
)

// Builder constructs a prerequisite graph incrementally.
//
// IMPORTANT: Builder is NOT safe for concurrent use. All registration
// methods must be called from a single goroutine. The resulting Graph
// is immutable and safe to use concurrently.
type Builder struct {
	graph *Graph

	// edgeSeen tracks declared (prerequisite, dependent) pairs so that
	// duplicates become warnings instead of parallel edges.
	edgeSeen map[PrerequisiteEdge]bool
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{
		graph: &Graph{
			nodes: make(map[DisciplineID]*Node),
			order: make([]DisciplineID, 0),
		},
		edgeSeen: make(map[PrerequisiteEdge]bool),
	}
}

// AddDiscipline registers a discipline node.
func (b *Builder) AddDiscipline(d Discipline) error {
	if err := d.ID.Validate(); err != nil {
		return err
	}
	if _, exists := b.graph.nodes[d.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDiscipline, d.ID)
	}
	b.graph.nodes[d.ID] = &Node{
		ID:       d.ID,
		Name:     d.Name,
		CourseID: d.CourseID,
		Parents:  []DisciplineID{},
		Children: []DisciplineID{},
	}
	b.graph.order = append(b.graph.order, d.ID)
	return nil
}

// AddPrerequisite adds a directed edge from a prerequisite to its
// dependent. Self-loops are rejected with ErrSelfPrerequisite; edges
// referencing unknown disciplines fail with ErrNodeNotFound. Cycles of
// length two or more are accepted here and left for DetectCycles.
func (b *Builder) AddPrerequisite(prerequisite, dependent DisciplineID) error {
	if prerequisite == dependent {
		return fmt.Errorf("%w: %s", ErrSelfPrerequisite, dependent)
	}
	parent, ok := b.graph.nodes[prerequisite]
	if !ok {
		return fmt.Errorf("%w: prerequisite %s", ErrNodeNotFound, prerequisite)
	}
	child, ok := b.graph.nodes[dependent]
	if !ok {
		return fmt.Errorf("%w: dependent %s", ErrNodeNotFound, dependent)
	}

	edge := PrerequisiteEdge{Prerequisite: prerequisite, Dependent: dependent}
	if b.edgeSeen[edge] {
		b.graph.warnings = append(b.graph.warnings, Warning{Kind: WarningDuplicateEdge, Edge: edge})
		return nil
	}
	b.edgeSeen[edge] = true

	parent.Children = append(parent.Children, dependent)
	child.Parents = append(child.Parents, prerequisite)
	return nil
}

// Graph finalizes construction and returns the built graph. The builder
// must not be used afterwards.
func (b *Builder) Graph() *Graph {
	g := b.graph
	b.graph = nil
	b.edgeSeen = nil
	return g
}

// Build converts a flat dataset into a graph. Unlike the incremental
// Builder methods, bulk construction degrades instead of failing:
// dangling, duplicate and self-loop edges are skipped and recorded as
// warnings on the returned graph, so partial data still supports
// display. Only malformed discipline rows (bad or duplicate ids) abort
// the build.
func Build(ds Dataset) (*Graph, error) {
	b := NewBuilder()
	for _, d := range ds.Disciplines {
		if err := b.AddDiscipline(d); err != nil {
			return nil, fmt.Errorf("build graph: %w", err)
		}
	}

	for _, e := range ds.Prerequisites {
		err := b.AddPrerequisite(e.Prerequisite, e.Dependent)
		switch {
		case err == nil:
		case errors.Is(err, ErrSelfPrerequisite):
			b.graph.warnings = append(b.graph.warnings, Warning{Kind: WarningSelfPrerequisite, Edge: e})
		case errors.Is(err, ErrNodeNotFound):
			missing := e.Prerequisite
			if b.graph.nodes[e.Prerequisite] != nil {
				missing = e.Dependent
			}
			b.graph.warnings = append(b.graph.warnings, Warning{Kind: WarningDanglingEdge, Edge: e, Missing: missing})
		default:
			return nil, fmt.Errorf("build graph: %w", err)
		}
	}

	return b.Graph(), nil
}

// Sentinel errors for common failure cases.
var (
	ErrInvalidDisciplineID = errors.New("invalid discipline ID")
	ErrDuplicateDiscipline = errors.New("discipline already exists")
	ErrNodeNotFound        = errors.New("discipline not found")
	ErrSelfPrerequisite    = errors.New("discipline cannot be its own prerequisite")
)
