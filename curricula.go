// Package curricula exposes curriculum insight queries over a
// prerequisite graph: cycle detection, importance ranking, next-step
// recommendations, completion planning and progress projection.
package curricula

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/unificado/curricula/cgraph"
)

// Service answers curriculum insight queries on top of a Store: cycle
// detection, importance ranking, per-student recommendations,
// completion planning and progress projection.
//
// Every query builds its graph view from the store (or a cached
// snapshot, see WithSnapshotCache) and computes the result with no
// retained state, so a single Service handles concurrent requests
// without locking.
type Service struct {
	store Store
	log   *slog.Logger

	// cache is nil unless WithSnapshotCache was given.
	cache *snapshotCache
}

// New creates a service on top of the given store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   NullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns the current prerequisite graph. Without a cache the
// graph is rebuilt from the store on every call; with one, a snapshot
// is reused until the store reports a new curriculum version.
func (s *Service) Graph(ctx context.Context) (*cgraph.Graph, error) {
	vs, versioned := s.store.(VersionedStore)
	if s.cache == nil || !versioned {
		return s.buildGraph(ctx)
	}

	version, err := vs.CurriculumVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("read curriculum version: %w", err)
	}
	return s.cache.get(ctx, version, s.buildGraph)
}

func (s *Service) buildGraph(ctx context.Context) (*cgraph.Graph, error) {
	ds, err := s.store.Curriculum(ctx)
	if err != nil {
		return nil, fmt.Errorf("read curriculum: %w", err)
	}

	g, err := cgraph.Build(ds)
	if err != nil {
		return nil, err
	}
	for _, w := range g.Warnings() {
		s.log.Warn("curriculum graph warning", "kind", w.Kind.String(), "detail", w.String())
	}
	s.log.Debug("curriculum graph built",
		"disciplines", g.Len(), "warnings", len(g.Warnings()))
	return g, nil
}

// DetectCycles enumerates all prerequisite cycles. An empty result
// means the curriculum is a valid DAG.
func (s *Service) DetectCycles(ctx context.Context) ([][]cgraph.DisciplineID, error) {
	g, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}
	cycles := g.DetectCycles()
	if len(cycles) > 0 {
		s.log.Warn("prerequisite cycles present", "count", len(cycles))
	}
	return cycles, nil
}

// AnalyzeImportance ranks every discipline by structural importance.
func (s *Service) AnalyzeImportance(ctx context.Context) ([]cgraph.Importance, error) {
	g, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}
	return g.AnalyzeImportance(), nil
}

// Recommend lists the disciplines the student can take next.
func (s *Service) Recommend(ctx context.Context, studentID string) ([]cgraph.Recommendation, error) {
	g, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}
	student, err := s.store.Student(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("read student %s: %w", studentID, err)
	}
	return g.Recommend(cgraph.NewIDSet(student.Completed...)), nil
}

// PlanPath computes a prerequisite-respecting order in which the
// student can complete the target disciplines.
func (s *Service) PlanPath(ctx context.Context, studentID string, targets []cgraph.DisciplineID) (cgraph.Plan, error) {
	g, err := s.Graph(ctx)
	if err != nil {
		return cgraph.Plan{}, err
	}
	student, err := s.store.Student(ctx, studentID)
	if err != nil {
		return cgraph.Plan{}, fmt.Errorf("read student %s: %w", studentID, err)
	}
	plan, err := g.PlanPath(cgraph.NewIDSet(student.Completed...), targets)
	if err != nil {
		return cgraph.Plan{}, err
	}
	if plan.Infeasible {
		s.log.Warn("no feasible completion order", "student", studentID, "targets", len(targets))
	}
	return plan, nil
}

// ProjectProgress annotates every discipline with the student's status.
func (s *Service) ProjectProgress(ctx context.Context, studentID string) ([]cgraph.ProgressEntry, error) {
	g, err := s.Graph(ctx)
	if err != nil {
		return nil, err
	}
	student, err := s.store.Student(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("read student %s: %w", studentID, err)
	}
	return g.ProjectProgress(
		cgraph.NewIDSet(student.Completed...),
		cgraph.NewIDSet(student.InProgress...),
		cgraph.NewIDSet(student.Associated...),
	), nil
}
