// Package cgraph builds and queries curriculum prerequisite graphs.
//
// # Overview
//
// A curriculum is a set of disciplines connected by directed
// prerequisite edges (prerequisite -> dependent). cgraph converts the
// flat dataset read by the persistence layer into an immutable
// in-memory graph and answers the questions the rest of the system
// needs:
//
//   - DetectCycles: every elementary cycle (mutually blocking
//     prerequisites are invalid curriculum data, but they must be found,
//     not crashed on)
//   - AnalyzeImportance: out-degree, descendant closure size and
//     betweenness centrality per discipline
//   - Recommend: disciplines a student can take next, given what they
//     completed
//   - PlanPath: a prerequisite-respecting order to finish a target set
//   - ProjectProgress: per-discipline status for display
//
// # Construction
//
// Graphs are built either incrementally through Builder, which rejects
// bad edges with errors, or in bulk through Build, which degrades
// instead: dangling, duplicate and self-loop edges are skipped and
// recorded as Warnings so that partial data still supports display.
//
//	graph, err := cgraph.Build(cgraph.Dataset{
//	    Disciplines: []cgraph.Discipline{
//	        {ID: "calc1", Name: "Calculus I"},
//	        {ID: "calc2", Name: "Calculus II"},
//	    },
//	    Prerequisites: []cgraph.PrerequisiteEdge{
//	        {Prerequisite: "calc1", Dependent: "calc2"},
//	    },
//	})
//
// # Concurrency
//
// A built Graph is never mutated. All query methods are pure reads and
// safe for concurrent use; each call recomputes its result from the
// graph and the caller-supplied sets, with no state retained between
// calls.
//
// # Robustness
//
// The backing store does not prevent cycles, so every traversal here is
// iterative with explicit stacks and visited sets. A cyclic or
// arbitrarily deep graph can never overflow the call stack; cycles are
// reported by DetectCycles and make PlanPath return an infeasible plan,
// nothing panics.
package cgraph
