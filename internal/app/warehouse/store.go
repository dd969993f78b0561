package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/pkg/apperrors"
	"github.com/yigit/unireport/internal/pkg/dberrors"
	"github.com/yigit/unireport/internal/pkg/logger"
)

// Warehouse schema. The four relations are replaced on every run;
// pipeline_runs accumulates one row per run. There is deliberately no
// foreign key from enrollments.department to departments: an orphan
// department reference is a tolerated state and must be storable.
const (
	createStudentSQL = `
	CREATE TABLE student (
		emplid     TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		email      TEXT,
		admit_term TEXT,
		admit_type TEXT
	)`

	createDepartmentsSQL = `
	CREATE TABLE departments (
		dept_code      TEXT PRIMARY KEY,
		dept_name      TEXT,
		contact_person TEXT,
		location       TEXT
	)`

	createAcadProgSQL = `
	CREATE TABLE acad_prog (
		id        TEXT NOT NULL,
		emplid    TEXT NOT NULL,
		acad_prog TEXT NOT NULL,
		status    TEXT NOT NULL,
		effdt     TEXT NOT NULL,
		PRIMARY KEY (id, emplid, acad_prog, status, effdt),
		FOREIGN KEY (emplid) REFERENCES student(emplid)
	)`

	createEnrollmentsSQL = `
	CREATE TABLE enrollments (
		emplid       TEXT NOT NULL,
		strm         TEXT NOT NULL,
		course_id    TEXT NOT NULL,
		class_nbr    TEXT NOT NULL,
		department   TEXT NOT NULL,
		course_name  TEXT,
		credit_hours INTEGER NOT NULL CHECK (credit_hours BETWEEN 0 AND 30),
		PRIMARY KEY (emplid, strm, course_id, class_nbr),
		FOREIGN KEY (emplid) REFERENCES student(emplid)
	)`

	createPipelineRunsSQL = `
	CREATE TABLE IF NOT EXISTS pipeline_runs (
		run_id           TEXT PRIMARY KEY,
		started_at       TEXT NOT NULL,
		completed_at     TEXT NOT NULL,
		student_count    INTEGER NOT NULL,
		program_count    INTEGER NOT NULL,
		enrollment_count INTEGER NOT NULL,
		department_count INTEGER NOT NULL,
		defect_count     INTEGER NOT NULL,
		repair_count     INTEGER NOT NULL
	)`
)

// RunMeta describes the run being persisted into pipeline_runs.
type RunMeta struct {
	RunID       string
	StartedAt   time.Time
	CompletedAt time.Time
	DefectCount int
	RepairCount int
}

// Store owns the SQLite warehouse artifact.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the warehouse database at path.
func NewStore(path string) (*Store, error) {
	db, err := openWarehouse(path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Open opens an existing warehouse for verification. A missing file is an
// error; verification never creates the artifact it checks.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrWarehouseNotFound, fmt.Sprintf("warehouse database %s: %v", path, err))
	}

	db, err := openWarehouse(fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

func openWarehouse(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse database: %w", err)
	}

	// Foreign key enforcement is per connection in SQLite; one connection
	// keeps the pragma in force for every statement.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the warehouse file path.
func (s *Store) Path() string {
	return s.path
}

// Replace atomically swaps the warehouse contents for the cleaned dataset
// and appends the run's row to pipeline_runs. Constraint order matters:
// parents are created and filled before children so the foreign keys hold
// throughout the transaction.
func (s *Store) Replace(ctx context.Context, ds models.Dataset, meta RunMeta) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin warehouse transaction: %w", err)
	}
	defer tx.Rollback()

	drops := []string{
		"DROP TABLE IF EXISTS enrollments",
		"DROP TABLE IF EXISTS acad_prog",
		"DROP TABLE IF EXISTS student",
		"DROP TABLE IF EXISTS departments",
	}
	for _, q := range drops {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to drop warehouse table: %w", err)
		}
	}

	creates := []string{createStudentSQL, createDepartmentsSQL, createAcadProgSQL, createEnrollmentsSQL, createPipelineRunsSQL}
	for _, q := range creates {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to create warehouse table: %w", err)
		}
	}

	if err := s.insertStudents(ctx, tx, ds.Students); err != nil {
		return err
	}
	if err := s.insertDepartments(ctx, tx, ds.Departments); err != nil {
		return err
	}
	if err := s.insertPrograms(ctx, tx, ds.Programs); err != nil {
		return err
	}
	if err := s.insertEnrollments(ctx, tx, ds.Enrollments); err != nil {
		return err
	}

	if err := s.insertRun(ctx, tx, ds, meta); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit warehouse transaction: %w", err)
	}

	logger.Debug().
		Str("path", s.path).
		Int("students", len(ds.Students)).
		Int("programs", len(ds.Programs)).
		Int("enrollments", len(ds.Enrollments)).
		Int("departments", len(ds.Departments)).
		Msg("Warehouse replaced")

	return nil
}

func (s *Store) insertStudents(ctx context.Context, tx *sql.Tx, students []models.Student) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO student (emplid, first_name, last_name, email, admit_term, admit_type)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare student insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range students {
		if _, err := stmt.ExecContext(ctx, st.EMPLID, st.FirstName, st.LastName, st.Email, st.AdmitTerm, st.AdmitType); err != nil {
			return insertError("student", st.EMPLID, err)
		}
	}
	return nil
}

func (s *Store) insertDepartments(ctx context.Context, tx *sql.Tx, departments []models.Department) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO departments (dept_code, dept_name, contact_person, location)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare department insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range departments {
		if _, err := stmt.ExecContext(ctx, d.Code, d.Name, d.ContactPerson, d.Location); err != nil {
			return insertError("department", d.Code, err)
		}
	}
	return nil
}

func (s *Store) insertPrograms(ctx context.Context, tx *sql.Tx, programs []models.AcademicProgram) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO acad_prog (id, emplid, acad_prog, status, effdt)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare program insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range programs {
		if _, err := stmt.ExecContext(ctx, p.ID, p.EMPLID, p.ProgramCode, p.Status, p.EffectiveDate); err != nil {
			return insertError("program of student", p.EMPLID, err)
		}
	}
	return nil
}

func (s *Store) insertEnrollments(ctx context.Context, tx *sql.Tx, enrollments []models.Enrollment) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO enrollments (emplid, strm, course_id, class_nbr, department, course_name, credit_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare enrollment insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range enrollments {
		if _, err := stmt.ExecContext(ctx, e.EMPLID, e.Term, e.CourseID, e.Section, e.DeptCode, e.CourseName, e.CreditHours); err != nil {
			return insertError("enrollment", e.EMPLID+"/"+e.Term+"/"+e.CourseID, err)
		}
	}
	return nil
}

// insertError distinguishes schema constraint violations from plain insert
// failures. A violation means a defective row survived cleaning.
func insertError(kind, key string, err error) error {
	if dberrors.IsConstraintViolation(err) {
		return fmt.Errorf("%s %s violates warehouse constraints: %w", kind, key, err)
	}
	return fmt.Errorf("failed to insert %s %s: %w", kind, key, err)
}

func (s *Store) insertRun(ctx context.Context, tx *sql.Tx, ds models.Dataset, meta RunMeta) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO pipeline_runs (run_id, started_at, completed_at, student_count, program_count,
			enrollment_count, department_count, defect_count, repair_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID,
		meta.StartedAt.UTC().Format(time.RFC3339),
		meta.CompletedAt.UTC().Format(time.RFC3339),
		len(ds.Students),
		len(ds.Programs),
		len(ds.Enrollments),
		len(ds.Departments),
		meta.DefectCount,
		meta.RepairCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record pipeline run: %w", err)
	}
	return nil
}
