package cgraph

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRecommend(t *testing.T) {
	t.Run("unlocked by completed prerequisites", func(t *testing.T) {
		g := mustBuild(t, diamondDataset())
		recs := g.Recommend(NewIDSet("A"))

		// B and C are unlocked; D still waits on both.
		assert.Equal(t, 2, len(recs))
		assert.Equal(t, DisciplineID("B"), recs[0].ID)
		assert.Equal(t, DisciplineID("C"), recs[1].ID)
		assert.Equal(t, []DisciplineID{"A"}, recs[0].Prereqs)
	})

	t.Run("nothing completed yields only prerequisite-free disciplines", func(t *testing.T) {
		g := mustBuild(t, diamondDataset())
		recs := g.Recommend(NewIDSet())
		assert.Equal(t, 1, len(recs))
		assert.Equal(t, DisciplineID("A"), recs[0].ID)
		assert.Equal(t, 0, len(recs[0].Prereqs))
	})

	t.Run("never recommends completed disciplines", func(t *testing.T) {
		g := mustBuild(t, diamondDataset())
		recs := g.Recommend(NewIDSet("A", "B", "C", "D"))
		assert.Equal(t, 0, len(recs))
	})

	t.Run("sorted by prerequisite count then id", func(t *testing.T) {
		g := mustBuild(t, Dataset{
			Disciplines: []Discipline{disc("A"), disc("B"), disc("C"), disc("D")},
			Prerequisites: []PrerequisiteEdge{
				edge("A", "D"),
				edge("B", "D"),
			},
		})
		recs := g.Recommend(NewIDSet("A", "B"))
		// C has no prerequisites, D has two satisfied ones.
		assert.Equal(t, 2, len(recs))
		assert.Equal(t, DisciplineID("C"), recs[0].ID)
		assert.Equal(t, DisciplineID("D"), recs[1].ID)
		assert.Equal(t, []DisciplineID{"A", "B"}, recs[1].Prereqs)
	})

	t.Run("cycle members stay ineligible but do not block others", func(t *testing.T) {
		ds := twoCycleDataset()
		ds.Disciplines = append(ds.Disciplines, disc("Z"))
		g := mustBuild(t, ds)

		recs := g.Recommend(NewIDSet())
		assert.Equal(t, 1, len(recs))
		assert.Equal(t, DisciplineID("Z"), recs[0].ID)
	})

	t.Run("completed cycle member unlocks the other", func(t *testing.T) {
		// Only direct predecessors matter, so completing one side of a
		// cycle makes the other eligible.
		g := mustBuild(t, twoCycleDataset())
		recs := g.Recommend(NewIDSet("A"))
		assert.Equal(t, 1, len(recs))
		assert.Equal(t, DisciplineID("B"), recs[0].ID)
	})
}
