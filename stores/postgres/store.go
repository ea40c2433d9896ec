// Package postgres implements the curricula.Store interface on top of
// the curriculum database. All access is read-only; the schema is owned
// by the API layer's migrations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/multierr"

	"github.com/unificado/curricula"
	"github.com/unificado/curricula/cgraph"
)

// Discipline status values as stored in students_disciplines.
const (
	statusCompleted  = "concluido"
	statusInProgress = "cursando"
)

const (
	selectDisciplines = `SELECT id, name, course_id FROM disciplines ORDER BY id`

	selectPrerequisites = `SELECT prerequisite_id, discipline_id FROM discipline_prerequisites ORDER BY prerequisite_id, discipline_id`

	selectStudentExists = `SELECT EXISTS (SELECT 1 FROM student_profiles WHERE id = $1)`

	selectStudentDisciplines = `SELECT discipline_id, status FROM students_disciplines WHERE student_id = $1 ORDER BY discipline_id`

	// curriculum_version is a single-row table; the write path bumps it
	// on every discipline or prerequisite mutation.
	selectCurriculumVersion = `SELECT version FROM curriculum_version`
)

// Store reads curriculum and student data from Postgres.
type Store struct {
	pool *pgxpool.Pool
}

var _ curricula.VersionedStore = (*Store)(nil)

// New connects to the database and verifies the connection.
func New(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect to curriculum database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping curriculum database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing pool. The caller keeps ownership and
// must close it.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Curriculum reads all disciplines and prerequisite pairs inside one
// read-only transaction, so the node and edge sets come from a single
// consistent snapshot.
func (s *Store) Curriculum(ctx context.Context) (_ cgraph.Dataset, err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return cgraph.Dataset{}, fmt.Errorf("begin curriculum read: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = multierr.Append(err, rbErr)
		}
	}()

	var ds cgraph.Dataset

	rows, err := tx.Query(ctx, selectDisciplines)
	if err != nil {
		return cgraph.Dataset{}, fmt.Errorf("read disciplines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id       int64
			name     string
			courseID int64
		)
		if err := rows.Scan(&id, &name, &courseID); err != nil {
			return cgraph.Dataset{}, fmt.Errorf("scan discipline: %w", err)
		}
		ds.Disciplines = append(ds.Disciplines, cgraph.Discipline{
			ID:       disciplineID(id),
			Name:     name,
			CourseID: strconv.FormatInt(courseID, 10),
		})
	}
	if err := rows.Err(); err != nil {
		return cgraph.Dataset{}, fmt.Errorf("read disciplines: %w", err)
	}
	rows.Close()

	rows, err = tx.Query(ctx, selectPrerequisites)
	if err != nil {
		return cgraph.Dataset{}, fmt.Errorf("read prerequisites: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var prereqID, discID int64
		if err := rows.Scan(&prereqID, &discID); err != nil {
			return cgraph.Dataset{}, fmt.Errorf("scan prerequisite: %w", err)
		}
		ds.Prerequisites = append(ds.Prerequisites, cgraph.PrerequisiteEdge{
			Prerequisite: disciplineID(prereqID),
			Dependent:    disciplineID(discID),
		})
	}
	if err := rows.Err(); err != nil {
		return cgraph.Dataset{}, fmt.Errorf("read prerequisites: %w", err)
	}

	return ds, nil
}

// Student reads one student's discipline sets. Every enrollment row
// makes the discipline associated; the status column further sorts it
// into completed or in-progress.
func (s *Store) Student(ctx context.Context, studentID string) (curricula.StudentRecord, error) {
	id, err := strconv.ParseInt(studentID, 10, 64)
	if err != nil {
		return curricula.StudentRecord{}, fmt.Errorf("%w: %s", curricula.ErrStudentNotFound, studentID)
	}

	var exists bool
	if err := s.pool.QueryRow(ctx, selectStudentExists, id).Scan(&exists); err != nil {
		return curricula.StudentRecord{}, fmt.Errorf("look up student %d: %w", id, err)
	}
	if !exists {
		return curricula.StudentRecord{}, fmt.Errorf("%w: %s", curricula.ErrStudentNotFound, studentID)
	}

	rows, err := s.pool.Query(ctx, selectStudentDisciplines, id)
	if err != nil {
		return curricula.StudentRecord{}, fmt.Errorf("read student %d disciplines: %w", id, err)
	}
	defer rows.Close()

	var record curricula.StudentRecord
	for rows.Next() {
		var (
			discID int64
			status string
		)
		if err := rows.Scan(&discID, &status); err != nil {
			return curricula.StudentRecord{}, fmt.Errorf("scan student discipline: %w", err)
		}
		did := disciplineID(discID)
		record.Associated = append(record.Associated, did)
		switch status {
		case statusCompleted:
			record.Completed = append(record.Completed, did)
		case statusInProgress:
			record.InProgress = append(record.InProgress, did)
		}
	}
	if err := rows.Err(); err != nil {
		return curricula.StudentRecord{}, fmt.Errorf("read student %d disciplines: %w", id, err)
	}

	return record, nil
}

// CurriculumVersion reads the current curriculum version stamp.
func (s *Store) CurriculumVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := s.pool.QueryRow(ctx, selectCurriculumVersion).Scan(&version); err != nil {
		return 0, fmt.Errorf("read curriculum version: %w", err)
	}
	return version, nil
}

func disciplineID(id int64) cgraph.DisciplineID {
	return cgraph.DisciplineID(strconv.FormatInt(id, 10))
}
