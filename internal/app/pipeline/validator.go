package pipeline

import (
	"fmt"
	"strings"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/pkg/apperrors"
)

// Relation names used in check samples, audit keys and the warehouse schema.
const (
	StudentTable    = "student"
	ProgramTable    = "acad_prog"
	EnrollmentTable = "enrollments"
	DepartmentTable = "departments"
)

// Severity classifies a check outcome. Defects are recoverable and handled
// by the Cleaner; warnings are informational and never block a run.
type Severity string

const (
	SeverityDefect  Severity = "defect"
	SeverityWarning Severity = "warning"
)

// Check classes of the fixed validation battery.
const (
	ClassDuplicateStudents             = "duplicate_students"
	ClassDuplicatePrograms             = "duplicate_programs"
	ClassDuplicateDepartments          = "duplicate_departments"
	ClassDuplicateEnrollments          = "duplicate_enrollments"
	ClassOrphanedProgramsStudent       = "orphaned_programs_student"
	ClassOrphanedEnrollmentsStudent    = "orphaned_enrollments_student"
	ClassOrphanedEnrollmentsDepartment = "orphaned_enrollments_department"
	ClassNullRequired                  = "null_required"
	ClassCreditHoursRange              = "credit_hours_range"
	ClassStudentsWithoutEnrollments    = "students_without_enrollments"
)

// maxSamples caps the offending keys carried per check result.
const maxSamples = 5

// CheckResult is the outcome of one battery check. Count is the number of
// affected rows; Samples holds up to maxSamples offending keys in load order.
type CheckResult struct {
	Class    string
	Severity Severity
	Count    int
	Samples  []string
}

// Report is the structured outcome of a full validation pass, one result per
// battery check in battery order.
type Report struct {
	Results []CheckResult
}

// HasDefects reports whether any defect-severity check found rows.
func (r Report) HasDefects() bool {
	return len(r.DefectClasses()) > 0
}

// DefectClasses returns the classes of defect-severity checks that found
// rows, in battery order.
func (r Report) DefectClasses() []string {
	var classes []string
	for _, res := range r.Results {
		if res.Severity == SeverityDefect && res.Count > 0 {
			classes = append(classes, res.Class)
		}
	}
	return classes
}

// Result returns the outcome of the named check.
func (r Report) Result(class string) (CheckResult, bool) {
	for _, res := range r.Results {
		if res.Class == class {
			return res, true
		}
	}
	return CheckResult{}, false
}

// Validator runs the fixed integrity battery over a normalized dataset. It
// classifies, never repairs; the report it produces drives the Cleaner.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs every battery check and returns the report. An empty student
// or enrollment relation is a precondition failure: no summary could ever be
// produced, so the run must halt before cleaning.
func (v *Validator) Validate(ds models.Dataset) (Report, error) {
	if len(ds.Students) == 0 {
		return Report{}, apperrors.NewPreconditionError("student relation is empty after normalization")
	}
	if len(ds.Enrollments) == 0 {
		return Report{}, apperrors.NewPreconditionError("enrollment relation is empty after normalization")
	}

	return Report{Results: []CheckResult{
		v.duplicateStudents(ds),
		v.duplicatePrograms(ds),
		v.duplicateDepartments(ds),
		v.duplicateEnrollments(ds),
		v.orphanedProgramsStudent(ds),
		v.orphanedEnrollmentsStudent(ds),
		v.orphanedEnrollmentsDepartment(ds),
		v.nullRequired(ds),
		v.creditHoursRange(ds),
		v.studentsWithoutEnrollments(ds),
	}}, nil
}

func (v *Validator) duplicateStudents(ds models.Dataset) CheckResult {
	keys := make([]string, 0, len(ds.Students))
	for _, s := range ds.Students {
		keys = append(keys, s.Key())
	}
	count, samples := countDuplicates(keys)
	return CheckResult{Class: ClassDuplicateStudents, Severity: SeverityDefect, Count: count, Samples: samples}
}

func (v *Validator) duplicatePrograms(ds models.Dataset) CheckResult {
	keys := make([]string, 0, len(ds.Programs))
	for _, p := range ds.Programs {
		keys = append(keys, p.Key())
	}
	count, samples := countDuplicates(keys)
	// Sample keys are full-row keys; report the owning student instead.
	for i, p := range samplePrograms(ds.Programs, samples) {
		samples[i] = p.EMPLID + "/" + p.ProgramCode
	}
	return CheckResult{Class: ClassDuplicatePrograms, Severity: SeverityDefect, Count: count, Samples: samples}
}

func (v *Validator) duplicateDepartments(ds models.Dataset) CheckResult {
	keys := make([]string, 0, len(ds.Departments))
	for _, d := range ds.Departments {
		keys = append(keys, d.Key())
	}
	count, samples := countDuplicates(keys)
	return CheckResult{Class: ClassDuplicateDepartments, Severity: SeverityDefect, Count: count, Samples: samples}
}

func (v *Validator) duplicateEnrollments(ds models.Dataset) CheckResult {
	keys := make([]string, 0, len(ds.Enrollments))
	for _, e := range ds.Enrollments {
		keys = append(keys, e.Key())
	}
	count, samples := countDuplicates(keys)
	for i, s := range samples {
		samples[i] = readableKey(s)
	}
	return CheckResult{Class: ClassDuplicateEnrollments, Severity: SeverityDefect, Count: count, Samples: samples}
}

func (v *Validator) orphanedProgramsStudent(ds models.Dataset) CheckResult {
	students := studentKeySet(ds.Students)
	result := CheckResult{Class: ClassOrphanedProgramsStudent, Severity: SeverityDefect}
	sampled := make(map[string]bool)
	for _, p := range ds.Programs {
		if students[p.EMPLID] {
			continue
		}
		result.Count++
		if len(result.Samples) < maxSamples && !sampled[p.EMPLID] {
			result.Samples = append(result.Samples, p.EMPLID)
			sampled[p.EMPLID] = true
		}
	}
	return result
}

func (v *Validator) orphanedEnrollmentsStudent(ds models.Dataset) CheckResult {
	students := studentKeySet(ds.Students)
	result := CheckResult{Class: ClassOrphanedEnrollmentsStudent, Severity: SeverityDefect}
	sampled := make(map[string]bool)
	for _, e := range ds.Enrollments {
		if students[e.EMPLID] {
			continue
		}
		result.Count++
		if len(result.Samples) < maxSamples && !sampled[e.EMPLID] {
			result.Samples = append(result.Samples, e.EMPLID)
			sampled[e.EMPLID] = true
		}
	}
	return result
}

func (v *Validator) orphanedEnrollmentsDepartment(ds models.Dataset) CheckResult {
	departments := make(map[string]bool, len(ds.Departments))
	for _, d := range ds.Departments {
		departments[d.Code] = true
	}

	result := CheckResult{Class: ClassOrphanedEnrollmentsDepartment, Severity: SeverityWarning}
	sampled := make(map[string]bool)
	for _, e := range ds.Enrollments {
		if departments[e.DeptCode] {
			continue
		}
		result.Count++
		if len(result.Samples) < maxSamples && !sampled[e.DeptCode] {
			result.Samples = append(result.Samples, e.DeptCode)
			sampled[e.DeptCode] = true
		}
	}
	return result
}

// nullRequired checks the fields declared required: student identity and
// names, enrollment student, term and department, department code. Credit
// hours stay in the battery for completeness but cannot fail it; the
// Normalizer's cast guarantees a value.
func (v *Validator) nullRequired(ds models.Dataset) CheckResult {
	result := CheckResult{Class: ClassNullRequired, Severity: SeverityDefect}

	sample := func(relation string, i int) {
		if len(result.Samples) < maxSamples {
			result.Samples = append(result.Samples, fmt.Sprintf("%s[%d]", relation, i))
		}
	}

	for i, s := range ds.Students {
		if s.EMPLID == "" || s.FirstName == "" || s.LastName == "" {
			result.Count++
			sample(StudentTable, i)
		}
	}
	for i, e := range ds.Enrollments {
		if e.EMPLID == "" || e.Term == "" || e.DeptCode == "" {
			result.Count++
			sample(EnrollmentTable, i)
		}
	}
	for i, d := range ds.Departments {
		if d.Code == "" {
			result.Count++
			sample(DepartmentTable, i)
		}
	}

	return result
}

func (v *Validator) creditHoursRange(ds models.Dataset) CheckResult {
	result := CheckResult{Class: ClassCreditHoursRange, Severity: SeverityDefect}
	for _, e := range ds.Enrollments {
		if e.CreditHours < MinCreditHours || e.CreditHours > MaxCreditHours {
			result.Count++
			if len(result.Samples) < maxSamples {
				result.Samples = append(result.Samples, fmt.Sprintf("%s/%s/%d", e.EMPLID, e.Term, e.CreditHours))
			}
		}
	}
	return result
}

func (v *Validator) studentsWithoutEnrollments(ds models.Dataset) CheckResult {
	enrolled := make(map[string]bool, len(ds.Enrollments))
	for _, e := range ds.Enrollments {
		enrolled[e.EMPLID] = true
	}

	result := CheckResult{Class: ClassStudentsWithoutEnrollments, Severity: SeverityWarning}
	for _, s := range ds.Students {
		if enrolled[s.EMPLID] {
			continue
		}
		result.Count++
		if len(result.Samples) < maxSamples {
			result.Samples = append(result.Samples, s.EMPLID)
		}
	}
	return result
}

// countDuplicates counts rows beyond the first occurrence of each key and
// samples the duplicated keys in load order.
func countDuplicates(keys []string) (int, []string) {
	seen := make(map[string]bool, len(keys))
	sampled := make(map[string]bool)

	count := 0
	var samples []string
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			continue
		}
		count++
		if len(samples) < maxSamples && !sampled[k] {
			samples = append(samples, k)
			sampled[k] = true
		}
	}
	return count, samples
}

// readableKey rewrites a composite key's field separators for log output.
func readableKey(key string) string {
	return strings.ReplaceAll(key, "\x1f", "/")
}

func studentKeySet(students []models.Student) map[string]bool {
	set := make(map[string]bool, len(students))
	for _, s := range students {
		set[s.EMPLID] = true
	}
	return set
}

// samplePrograms resolves sampled full-row program keys back to their rows.
func samplePrograms(programs []models.AcademicProgram, keys []string) []models.AcademicProgram {
	byKey := make(map[string]models.AcademicProgram, len(programs))
	for _, p := range programs {
		if _, ok := byKey[p.Key()]; !ok {
			byKey[p.Key()] = p
		}
	}
	out := make([]models.AcademicProgram, len(keys))
	for i, k := range keys {
		out[i] = byKey[k]
	}
	return out
}
