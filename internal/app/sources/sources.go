package sources

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/unireport/internal/app/models"
)

// Snapshot table names fixed by the ingest contract.
const (
	StudentTable = "student"
	ProgramTable = "acad_prog"
)

// SnapshotSource reads the student and acad_prog tables from the relational
// snapshot. Implementations return untyped Tables with the source's own
// column names; normalization happens downstream.
type SnapshotSource interface {
	Students(ctx context.Context) (models.Table, error)
	Programs(ctx context.Context) (models.Table, error)
	Close()
}

// RawBundle holds the four raw relations exactly as read from the sources.
type RawBundle struct {
	Students    models.Table
	Programs    models.Table
	Enrollments models.Table
	Departments models.Table
}

// Loader reads all three sources. The snapshot tables share one connection
// and load sequentially; the two files load in parallel alongside them.
type Loader struct {
	snapshot    SnapshotSource
	enrollments *EnrollmentFile
	departments *DepartmentFile
}

// NewLoader creates a loader over the three configured sources.
func NewLoader(snapshot SnapshotSource, enrollments *EnrollmentFile, departments *DepartmentFile) *Loader {
	return &Loader{
		snapshot:    snapshot,
		enrollments: enrollments,
		departments: departments,
	}
}

// Load reads every source and returns the raw bundle. Any unreadable source
// fails the whole load; partially loaded bundles are never returned.
func (l *Loader) Load(ctx context.Context) (*RawBundle, error) {
	var bundle RawBundle

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		students, err := l.snapshot.Students(ctx)
		if err != nil {
			return err
		}
		bundle.Students = students

		programs, err := l.snapshot.Programs(ctx)
		if err != nil {
			return err
		}
		bundle.Programs = programs
		return nil
	})

	g.Go(func() error {
		enrollments, err := l.enrollments.Read()
		if err != nil {
			return err
		}
		bundle.Enrollments = enrollments
		return nil
	})

	g.Go(func() error {
		departments, err := l.departments.Read()
		if err != nil {
			return err
		}
		bundle.Departments = departments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &bundle, nil
}
