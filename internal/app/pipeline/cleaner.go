package pipeline

import (
	"fmt"
	"strings"

	"github.com/yigit/unireport/internal/app/models"
)

// Credit hours must land in [MinCreditHours, MaxCreditHours] after cleaning.
const (
	MinCreditHours = 0
	MaxCreditHours = 30
)

// Audit actions.
const (
	AuditDiscard = "discard"
	AuditClamp   = "clamp"
)

// AuditEntry records one remediation the Cleaner applied: which defect
// class, which row, what was done.
type AuditEntry struct {
	Class  string
	Key    string
	Action string
	Detail string
}

// Cleaner applies deterministic, idempotent remediation for every defect
// class the battery can flag. Orphan department references are deliberately
// untouched; the Focus Ranker treats them as "department unknown".
//
// Passes run in a fixed order and relations are cleaned students first, so
// the referential passes always run against the surviving student set.
// Cleaning one relation can orphan rows in another (a student discarded for
// an empty name orphans its enrollments), which is why every pass runs
// regardless of which classes the report flagged.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns a repaired copy of the dataset plus the ordered audit trail
// of every action taken. The input dataset is never modified. When the
// report carries no defects the dataset passes through untouched.
func (c *Cleaner) Clean(ds models.Dataset, report Report) (models.Dataset, []AuditEntry) {
	if !report.HasDefects() {
		return ds, nil
	}

	var audit []AuditEntry

	students, entries := c.cleanStudents(ds.Students)
	audit = append(audit, entries...)

	departments, entries := c.cleanDepartments(ds.Departments)
	audit = append(audit, entries...)

	surviving := studentKeySet(students)

	programs, entries := c.cleanPrograms(ds.Programs, surviving)
	audit = append(audit, entries...)

	enrollments, entries := c.cleanEnrollments(ds.Enrollments, surviving)
	audit = append(audit, entries...)

	cleaned := models.Dataset{
		Students:    students,
		Programs:    programs,
		Enrollments: enrollments,
		Departments: departments,
	}
	return cleaned, audit
}

func (c *Cleaner) cleanStudents(in []models.Student) ([]models.Student, []AuditEntry) {
	var audit []AuditEntry

	seen := make(map[string]bool, len(in))
	deduped := make([]models.Student, 0, len(in))
	for _, s := range in {
		if seen[s.Key()] {
			audit = append(audit, AuditEntry{
				Class:  ClassDuplicateStudents,
				Key:    s.EMPLID,
				Action: AuditDiscard,
				Detail: "duplicate EMPLID, first occurrence kept",
			})
			continue
		}
		seen[s.Key()] = true
		deduped = append(deduped, s)
	}

	out := make([]models.Student, 0, len(deduped))
	for _, s := range deduped {
		if fields := emptyStudentFields(s); len(fields) > 0 {
			audit = append(audit, AuditEntry{
				Class:  ClassNullRequired,
				Key:    s.EMPLID,
				Action: AuditDiscard,
				Detail: "empty " + strings.Join(fields, ", "),
			})
			continue
		}
		out = append(out, s)
	}

	return out, audit
}

func (c *Cleaner) cleanDepartments(in []models.Department) ([]models.Department, []AuditEntry) {
	var audit []AuditEntry

	seen := make(map[string]bool, len(in))
	deduped := make([]models.Department, 0, len(in))
	for _, d := range in {
		if seen[d.Key()] {
			audit = append(audit, AuditEntry{
				Class:  ClassDuplicateDepartments,
				Key:    d.Code,
				Action: AuditDiscard,
				Detail: "duplicate DEPT_CODE, first occurrence kept",
			})
			continue
		}
		seen[d.Key()] = true
		deduped = append(deduped, d)
	}

	out := make([]models.Department, 0, len(deduped))
	for _, d := range deduped {
		if d.Code == "" {
			audit = append(audit, AuditEntry{
				Class:  ClassNullRequired,
				Key:    DepartmentTable,
				Action: AuditDiscard,
				Detail: "empty DEPT_CODE",
			})
			continue
		}
		out = append(out, d)
	}

	return out, audit
}

func (c *Cleaner) cleanPrograms(in []models.AcademicProgram, students map[string]bool) ([]models.AcademicProgram, []AuditEntry) {
	var audit []AuditEntry

	seen := make(map[string]bool, len(in))
	deduped := make([]models.AcademicProgram, 0, len(in))
	for _, p := range in {
		if seen[p.Key()] {
			audit = append(audit, AuditEntry{
				Class:  ClassDuplicatePrograms,
				Key:    p.EMPLID + "/" + p.ProgramCode,
				Action: AuditDiscard,
				Detail: "identical program row, first occurrence kept",
			})
			continue
		}
		seen[p.Key()] = true
		deduped = append(deduped, p)
	}

	out := make([]models.AcademicProgram, 0, len(deduped))
	for _, p := range deduped {
		if !students[p.EMPLID] {
			audit = append(audit, AuditEntry{
				Class:  ClassOrphanedProgramsStudent,
				Key:    p.EMPLID + "/" + p.ProgramCode,
				Action: AuditDiscard,
				Detail: "no matching student",
			})
			continue
		}
		out = append(out, p)
	}

	return out, audit
}

func (c *Cleaner) cleanEnrollments(in []models.Enrollment, students map[string]bool) ([]models.Enrollment, []AuditEntry) {
	var audit []AuditEntry

	seen := make(map[string]bool, len(in))
	deduped := make([]models.Enrollment, 0, len(in))
	for _, e := range in {
		if seen[e.Key()] {
			audit = append(audit, AuditEntry{
				Class:  ClassDuplicateEnrollments,
				Key:    readableKey(e.Key()),
				Action: AuditDiscard,
				Detail: "duplicate enrollment key, first occurrence kept",
			})
			continue
		}
		seen[e.Key()] = true
		deduped = append(deduped, e)
	}

	owned := make([]models.Enrollment, 0, len(deduped))
	for _, e := range deduped {
		if !students[e.EMPLID] {
			audit = append(audit, AuditEntry{
				Class:  ClassOrphanedEnrollmentsStudent,
				Key:    readableKey(e.Key()),
				Action: AuditDiscard,
				Detail: "no matching student",
			})
			continue
		}
		owned = append(owned, e)
	}

	filled := make([]models.Enrollment, 0, len(owned))
	for _, e := range owned {
		if fields := emptyEnrollmentFields(e); len(fields) > 0 {
			audit = append(audit, AuditEntry{
				Class:  ClassNullRequired,
				Key:    readableKey(e.Key()),
				Action: AuditDiscard,
				Detail: "empty " + strings.Join(fields, ", "),
			})
			continue
		}
		filled = append(filled, e)
	}

	out := make([]models.Enrollment, 0, len(filled))
	for _, e := range filled {
		if e.CreditHours < MinCreditHours || e.CreditHours > MaxCreditHours {
			clamped := clampCreditHours(e.CreditHours)
			audit = append(audit, AuditEntry{
				Class:  ClassCreditHoursRange,
				Key:    readableKey(e.Key()),
				Action: AuditClamp,
				Detail: fmt.Sprintf("credit hours %d clamped to %d", e.CreditHours, clamped),
			})
			e.CreditHours = clamped
		}
		out = append(out, e)
	}

	return out, audit
}

func clampCreditHours(v int) int {
	if v < MinCreditHours {
		return MinCreditHours
	}
	if v > MaxCreditHours {
		return MaxCreditHours
	}
	return v
}

func emptyStudentFields(s models.Student) []string {
	var fields []string
	if s.EMPLID == "" {
		fields = append(fields, colEMPLID)
	}
	if s.FirstName == "" {
		fields = append(fields, colFirstName)
	}
	if s.LastName == "" {
		fields = append(fields, colLastName)
	}
	return fields
}

func emptyEnrollmentFields(e models.Enrollment) []string {
	var fields []string
	if e.EMPLID == "" {
		fields = append(fields, colEMPLID)
	}
	if e.Term == "" {
		fields = append(fields, colTerm)
	}
	if e.DeptCode == "" {
		fields = append(fields, colDepartment)
	}
	return fields
}
