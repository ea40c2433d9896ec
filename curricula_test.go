package curricula

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/unificado/curricula/cgraph"
)

// countingStore wraps a StaticStore and counts curriculum reads, to
// observe snapshot cache behavior.
type countingStore struct {
	StaticStore

	mu    sync.Mutex
	reads int
}

func (s *countingStore) Curriculum(ctx context.Context) (cgraph.Dataset, error) {
	s.mu.Lock()
	s.reads++
	s.mu.Unlock()
	return s.StaticStore.Curriculum(ctx)
}

func (s *countingStore) curriculumReads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

func testStore() *countingStore {
	return &countingStore{
		StaticStore: StaticStore{
			Dataset: cgraph.Dataset{
				Disciplines: []cgraph.Discipline{
					{ID: "A", Name: "Intro"},
					{ID: "B", Name: "Structures"},
					{ID: "C", Name: "Logic"},
					{ID: "D", Name: "Algorithms"},
				},
				Prerequisites: []cgraph.PrerequisiteEdge{
					{Prerequisite: "A", Dependent: "B"},
					{Prerequisite: "A", Dependent: "C"},
					{Prerequisite: "B", Dependent: "D"},
					{Prerequisite: "C", Dependent: "D"},
				},
			},
			Students: map[string]StudentRecord{
				"maria": {
					Completed:  []cgraph.DisciplineID{"A"},
					InProgress: []cgraph.DisciplineID{"B"},
					Associated: []cgraph.DisciplineID{"A", "B", "C"},
				},
			},
			Version: 1,
		},
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("detect cycles on a clean curriculum", func(t *testing.T) {
		svc := New(testStore())
		cycles, err := svc.DetectCycles(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(cycles))
	})

	t.Run("importance ranking", func(t *testing.T) {
		svc := New(testStore())
		rows, err := svc.AnalyzeImportance(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 4, len(rows))
		assert.Equal(t, cgraph.DisciplineID("A"), rows[0].ID)
		assert.Equal(t, "Intro", rows[0].Name)
	})

	t.Run("recommend for student", func(t *testing.T) {
		svc := New(testStore())
		recs, err := svc.Recommend(ctx, "maria")
		assert.NoError(t, err)
		assert.Equal(t, 2, len(recs))
		assert.Equal(t, cgraph.DisciplineID("B"), recs[0].ID)
		assert.Equal(t, cgraph.DisciplineID("C"), recs[1].ID)
	})

	t.Run("plan path for student", func(t *testing.T) {
		svc := New(testStore())
		plan, err := svc.PlanPath(ctx, "maria", []cgraph.DisciplineID{"D"})
		assert.NoError(t, err)
		assert.False(t, plan.Infeasible)
		assert.Equal(t, []cgraph.DisciplineID{"B", "C", "D"}, plan.Order)
	})

	t.Run("project progress for student", func(t *testing.T) {
		svc := New(testStore())
		entries, err := svc.ProjectProgress(ctx, "maria")
		assert.NoError(t, err)
		assert.Equal(t, []cgraph.ProgressEntry{
			{ID: "A", Name: "Intro", Status: cgraph.StatusCompleted},
			{ID: "B", Name: "Structures", Status: cgraph.StatusInProgress},
			{ID: "C", Name: "Logic", Status: cgraph.StatusPending},
			{ID: "D", Name: "Algorithms", Status: cgraph.StatusUnassociated},
		}, entries)
	})

	t.Run("unknown student", func(t *testing.T) {
		svc := New(testStore())
		_, err := svc.Recommend(ctx, "ghost")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrStudentNotFound))

		_, err = svc.ProjectProgress(ctx, "ghost")
		assert.True(t, errors.Is(err, ErrStudentNotFound))
	})

	t.Run("structural warnings do not fail queries", func(t *testing.T) {
		store := testStore()
		store.Dataset.Prerequisites = append(store.Dataset.Prerequisites,
			cgraph.PrerequisiteEdge{Prerequisite: "X", Dependent: "A"})

		svc := New(store)
		g, err := svc.Graph(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(g.Warnings()))

		cycles, err := svc.DetectCycles(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(cycles))
	})
}

func TestSnapshotCache(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses snapshot until version changes", func(t *testing.T) {
		store := testStore()
		svc := New(store, WithSnapshotCache())

		g1, err := svc.Graph(ctx)
		assert.NoError(t, err)
		g2, err := svc.Graph(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, store.curriculumReads())
		assert.True(t, g1 == g2)

		store.Version = 2
		g3, err := svc.Graph(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, store.curriculumReads())
		assert.True(t, g1 != g3)
	})

	t.Run("no cache without option", func(t *testing.T) {
		store := testStore()
		svc := New(store)
		_, err := svc.Graph(ctx)
		assert.NoError(t, err)
		_, err = svc.Graph(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 2, store.curriculumReads())
	})

	t.Run("concurrent readers", func(t *testing.T) {
		store := testStore()
		svc := New(store, WithSnapshotCache())

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					if _, err := svc.Graph(ctx); err != nil {
						t.Error(err)
						return
					}
				}
			}()
		}
		wg.Wait()
		// Far fewer rebuilds than reads; at most one per version.
		assert.Equal(t, 1, store.curriculumReads())
	})
}
