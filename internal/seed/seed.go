package seed

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Input artifact names, matching what the run command expects inside its
// --input directory.
const (
	SnapshotFile    = "student_info.sqlite3"
	EnrollmentsFile = "enrollments.dat"
	DepartmentsFile = "departments.json"
)

const (
	createStudentSQL = `CREATE TABLE student (
	EMPLID     TEXT,
	FIRST_NAME TEXT,
	LAST_NAME  TEXT,
	EMAIL      TEXT,
	ADMIT_TERM TEXT,
	ADMIT_TYPE TEXT
)`
	createProgramSQL = `CREATE TABLE acad_prog (
	ID        TEXT,
	EMPLID    TEXT,
	ACAD_PROG TEXT,
	STATUS    TEXT,
	EFFDT     TEXT
)`
)

// WriteSampleInputs writes a small demo input set under dir: a student
// snapshot database, a pipe-delimited enrollment extract and a JSON
// department directory. The rows deliberately carry one of each
// repairable defect (duplicates, orphans, a missing required field,
// out-of-range credit hours) plus the tolerated warning states, so a
// run over the directory exercises the whole cleaning battery.
func WriteSampleInputs(ctx context.Context, dir string, lgr zerolog.Logger) error {
	lgr.Info().Str("dir", dir).Msg("Writing sample input files...")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create input directory: %w", err)
	}

	var finalErr error // Collect per-artifact errors without stopping the process

	// --- Student snapshot (SQLite) --- //
	if err := writeSnapshot(ctx, filepath.Join(dir, SnapshotFile)); err != nil {
		lgr.Error().Err(err).Msg("Error writing student snapshot")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Enrollment extract (pipe-delimited) --- //
	if err := writeEnrollments(filepath.Join(dir, EnrollmentsFile)); err != nil {
		lgr.Error().Err(err).Msg("Error writing enrollment extract")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Department directory (JSON) --- //
	if err := writeDepartments(filepath.Join(dir, DepartmentsFile)); err != nil {
		lgr.Error().Err(err).Msg("Error writing department directory")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().
			Str("snapshot", SnapshotFile).
			Str("enrollments", EnrollmentsFile).
			Str("departments", DepartmentsFile).
			Msg("Sample inputs ready")
	}
	return finalErr
}

func writeSnapshot(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove previous snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot database: %w", err)
	}
	defer db.Close()

	for _, ddl := range []string{createStudentSQL, createProgramSQL} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create snapshot schema: %w", err)
		}
	}

	students := [][]any{
		{"1000000", "Emma", "Anderson", "emma.anderson@ku.edu", "2208", "FYR"},
		{"1000000", "Emma", "Anderson", "emma.anderson@ku.edu", "2208", "FYR"}, // duplicate record
		{"1000001", "Liam", "Brooks", "liam.brooks@ku.edu", "2212", "TRN"},
		{"1000002", "Olivia", "Chen", "olivia.chen@ku.edu", "2218", "FYR"},
		{"1000003", "Noah", "Davis", "noah.davis@ku.edu", "2224", "FYR"},
		{"1000004", "Sophia", "Evans", "sophia.evans@ku.edu", "2230", "FYR"}, // enrolled nowhere
		{"1000005", "", "Foster", "", "2238", "FYR"},                         // missing first name
	}
	if err := insertRows(ctx, db, "INSERT INTO student VALUES (?, ?, ?, ?, ?, ?)", students); err != nil {
		return err
	}

	programs := [][]any{
		{"1", "1000000", "PHYS-BS", "AC", "2020-08-17"},
		{"2", "1000001", "CS-BS", "AC", "2021-01-19"},
		{"3", "1000002", "MATH-BS", "AC", "2021-08-16"},
		{"3", "1000002", "MATH-BS", "AC", "2021-08-16"}, // duplicate record
		{"4", "1000003", "CS-BS", "AC", "2022-08-15"},
		{"5", "1000399", "CS-BS", "AC", "2022-08-15"}, // no matching student
	}
	return insertRows(ctx, db, "INSERT INTO acad_prog VALUES (?, ?, ?, ?, ?)", programs)
}

func insertRows(ctx context.Context, db *sql.DB, query string, rows [][]any) error {
	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("failed to insert snapshot row: %w", err)
		}
	}
	return nil
}

func writeEnrollments(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create enrollment extract: %w", err)
	}

	w := csv.NewWriter(f)
	w.Comma = '|'

	records := [][]string{
		{"EMPLID", "STRM", "COURSE_ID", "CLASS_NBR", "DEPARTMENT", "COURSE_NAME", "CREDIT_HOURS"},
		{"1000000", "2244", "PHYS301", "1001", "PHYS", "Quantum Mechanics I", "4"},
		{"1000000", "2244", "PHYS301", "1001", "PHYS", "Quantum Mechanics I", "4"}, // duplicate record
		{"1000000", "2244", "PHYS331", "1002", "PHYS", "Thermal Physics", "3"},
		{"1000000", "2244", "MATH210", "1003", "MATH", "Linear Algebra", "3"},
		{"1000000", "2244", "CS110", "1004", "CS", "Programming Fundamentals", "3"},
		{"1000001", "2244", "CS210", "2001", "CS", "Data Structures", "4"},
		{"1000001", "2244", "CS215", "2002", "CS", "Computer Architecture", "45"}, // clamped to 30
		{"1000002", "2244", "MATH320", "3001", "MATH", "Real Analysis", "3"},
		{"1000002", "2244", "STAT305", "3002", "STAT", "Applied Statistics", "3"}, // department not in the directory
		{"1000003", "2246", "CS260", "4001", "CS", "Algorithms", "three"},         // cast to 0
		{"1000003", "2246", "CS295", "4002", "CS", "Systems Programming", "-3"},   // clamped to 0
		{"1000005", "2244", "ENGL101", "6001", "ENGL", "Composition I", "3"},      // orphaned once 1000005 is dropped
		{"1000777", "2244", "CS110", "5001", "CS", "Programming Fundamentals", "3"}, // no matching student
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write enrollment extract: %w", err)
	}
	return f.Close()
}

func writeDepartments(path string) error {
	departments := []map[string]any{
		{"DEPT_CODE": "PHYS", "DEPT_NAME": "Physics", "CONTACT_PERSON": "Dr. James Wilson", "LOCATION": "Malott Hall"},
		{"DEPT_CODE": "MATH", "DEPT_NAME": "Mathematics", "CONTACT_PERSON": "Dr. Sarah Miller", "LOCATION": "Snow Hall"},
		{"DEPT_CODE": "CS", "DEPT_NAME": "Computer Science", "CONTACT_PERSON": "Dr. Alan Reed", "LOCATION": "Eaton Hall"},
		{"DEPT_CODE": "CS", "DEPT_NAME": "Computer Science", "CONTACT_PERSON": "Dr. Alan Reed", "LOCATION": "Eaton Hall"}, // duplicate record
		{"DEPT_CODE": "ENGL", "DEPT_NAME": "English", "CONTACT_PERSON": nil, "LOCATION": "Wescoe Hall"},
	}

	data, err := json.MarshalIndent(departments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode department directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write department directory: %w", err)
	}
	return nil
}
