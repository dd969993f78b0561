package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TableStat is a per-table row count.
type TableStat struct {
	Table string
	Rows  int
}

// RunRecord is one pipeline_runs row.
type RunRecord struct {
	RunID           string
	StartedAt       string
	CompletedAt     string
	StudentCount    int
	ProgramCount    int
	EnrollmentCount int
	DepartmentCount int
	DefectCount     int
	RepairCount     int
}

// VerifyReport holds the re-checked warehouse invariants. The hard checks
// must all be zero for a valid artifact; the informational counts describe
// tolerated states and never fail verification.
type VerifyReport struct {
	Tables  []TableStat
	LastRun *RunRecord

	// Hard checks
	DuplicateStudents        int
	DuplicatePrograms        int
	DuplicateDepartments     int
	DuplicateEnrollments     int
	OrphanProgramStudents    int
	OrphanEnrollmentStudents int
	CreditHoursOutOfRange    int

	// Informational
	OrphanEnrollmentDepartments int
	StudentsWithoutEnrollments  int
}

// OK reports whether every hard check passed.
func (r VerifyReport) OK() bool {
	return r.DuplicateStudents == 0 &&
		r.DuplicatePrograms == 0 &&
		r.DuplicateDepartments == 0 &&
		r.DuplicateEnrollments == 0 &&
		r.OrphanProgramStudents == 0 &&
		r.OrphanEnrollmentStudents == 0 &&
		r.CreditHoursOutOfRange == 0
}

// Failures names the hard checks that found rows.
func (r VerifyReport) Failures() []string {
	var out []string
	add := func(name string, count int) {
		if count > 0 {
			out = append(out, fmt.Sprintf("%s=%d", name, count))
		}
	}
	add("duplicate_students", r.DuplicateStudents)
	add("duplicate_programs", r.DuplicatePrograms)
	add("duplicate_departments", r.DuplicateDepartments)
	add("duplicate_enrollments", r.DuplicateEnrollments)
	add("orphaned_programs_student", r.OrphanProgramStudents)
	add("orphaned_enrollments_student", r.OrphanEnrollmentStudents)
	add("credit_hours_range", r.CreditHoursOutOfRange)
	return out
}

// Verify re-checks the persisted relations against the constraints the
// pipeline guarantees: key uniqueness, student referential integrity and the
// credit range. Orphan department references and students without
// enrollments are counted for visibility only.
func (s *Store) Verify(ctx context.Context) (VerifyReport, error) {
	var report VerifyReport

	counts := []struct {
		dest  *int
		query string
	}{
		{&report.DuplicateStudents,
			`SELECT COUNT(*) - COUNT(DISTINCT emplid) FROM student`},
		{&report.DuplicatePrograms,
			`SELECT (SELECT COUNT(*) FROM acad_prog) -
			        (SELECT COUNT(*) FROM (SELECT DISTINCT id, emplid, acad_prog, status, effdt FROM acad_prog))`},
		{&report.DuplicateDepartments,
			`SELECT COUNT(*) - COUNT(DISTINCT dept_code) FROM departments`},
		{&report.DuplicateEnrollments,
			`SELECT (SELECT COUNT(*) FROM enrollments) -
			        (SELECT COUNT(*) FROM (SELECT DISTINCT emplid, strm, course_id, class_nbr FROM enrollments))`},
		{&report.OrphanProgramStudents,
			`SELECT COUNT(*) FROM acad_prog a
			 LEFT JOIN student s ON a.emplid = s.emplid
			 WHERE s.emplid IS NULL`},
		{&report.OrphanEnrollmentStudents,
			`SELECT COUNT(*) FROM enrollments e
			 LEFT JOIN student s ON e.emplid = s.emplid
			 WHERE s.emplid IS NULL`},
		{&report.CreditHoursOutOfRange,
			`SELECT COUNT(*) FROM enrollments WHERE credit_hours < 0 OR credit_hours > 30`},
		{&report.OrphanEnrollmentDepartments,
			`SELECT COUNT(*) FROM enrollments e
			 LEFT JOIN departments d ON e.department = d.dept_code
			 WHERE d.dept_code IS NULL`},
		{&report.StudentsWithoutEnrollments,
			`SELECT COUNT(*) FROM student s
			 LEFT JOIN enrollments e ON s.emplid = e.emplid
			 WHERE e.emplid IS NULL`},
	}

	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return VerifyReport{}, fmt.Errorf("failed to run verification query: %w", err)
		}
	}

	for _, table := range []string{"student", "acad_prog", "enrollments", "departments"} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return VerifyReport{}, fmt.Errorf("failed to count %s rows: %w", table, err)
		}
		report.Tables = append(report.Tables, TableStat{Table: table, Rows: n})
	}

	lastRun, err := s.lastRun(ctx)
	if err != nil {
		return VerifyReport{}, err
	}
	report.LastRun = lastRun

	return report, nil
}

// lastRun returns the most recent pipeline_runs row, or nil when the table
// holds none.
func (s *Store) lastRun(ctx context.Context) (*RunRecord, error) {
	query := `
		SELECT run_id, started_at, completed_at, student_count, program_count,
		       enrollment_count, department_count, defect_count, repair_count
		FROM pipeline_runs
		ORDER BY started_at DESC
		LIMIT 1`

	var rec RunRecord
	err := s.db.QueryRowContext(ctx, query).Scan(
		&rec.RunID,
		&rec.StartedAt,
		&rec.CompletedAt,
		&rec.StudentCount,
		&rec.ProgramCount,
		&rec.EnrollmentCount,
		&rec.DepartmentCount,
		&rec.DefectCount,
		&rec.RepairCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last pipeline run: %w", err)
	}

	return &rec, nil
}
