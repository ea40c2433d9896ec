package curricula

import (
	"context"
	"errors"

	"github.com/unificado/curricula/cgraph"
)

// ErrStudentNotFound is returned by stores when a student id does not
// resolve to a student profile.
var ErrStudentNotFound = errors.New("student not found")

// StudentRecord holds a student's discipline id sets as read from the
// backing store. The sets may overlap; precedence is resolved by the
// graph operations, not here.
type StudentRecord struct {
	Completed  []cgraph.DisciplineID
	InProgress []cgraph.DisciplineID
	Associated []cgraph.DisciplineID
}

// Store is the persistence collaborator. The engine only ever reads:
// node and edge rows for graph construction, and per-student id sets
// for the student-scoped operations.
type Store interface {
	// Curriculum reads all disciplines and declared prerequisite pairs.
	Curriculum(ctx context.Context) (cgraph.Dataset, error)

	// Student reads one student's discipline sets. Returns
	// ErrStudentNotFound if the id is unknown.
	Student(ctx context.Context, studentID string) (StudentRecord, error)
}

// VersionedStore is implemented by stores that can report a curriculum
// version stamp. The write path bumps the stamp on every discipline or
// prerequisite mutation, which lets the service cache built graphs
// across requests and invalidate on change.
type VersionedStore interface {
	Store

	CurriculumVersion(ctx context.Context) (int64, error)
}
