package curricula

import (
	"context"
	"fmt"

	"github.com/unificado/curricula/cgraph"
)

// StaticStore is an in-memory Store over a fixed dataset. It backs the
// CLI (which loads curricula from files) and tests; production callers
// use stores/postgres.
type StaticStore struct {
	Dataset  cgraph.Dataset
	Students map[string]StudentRecord

	// Version is reported through VersionedStore so the snapshot cache
	// can be exercised against a static dataset.
	Version int64
}

var _ VersionedStore = (*StaticStore)(nil)

func (s *StaticStore) Curriculum(context.Context) (cgraph.Dataset, error) {
	return s.Dataset, nil
}

func (s *StaticStore) Student(_ context.Context, studentID string) (StudentRecord, error) {
	record, ok := s.Students[studentID]
	if !ok {
		return StudentRecord{}, fmt.Errorf("%w: %s", ErrStudentNotFound, studentID)
	}
	return record, nil
}

func (s *StaticStore) CurriculumVersion(context.Context) (int64, error) {
	return s.Version, nil
}
