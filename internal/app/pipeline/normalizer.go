package pipeline

import (
	"strconv"
	"strings"

	"github.com/yigit/unireport/internal/app/models"
)

// Canonical source column names. Lookup against raw tables is
// case-insensitive, so any casing in the source headers resolves here.
const (
	colEMPLID        = "EMPLID"
	colFirstName     = "FIRST_NAME"
	colLastName      = "LAST_NAME"
	colEmail         = "EMAIL"
	colAdmitTerm     = "ADMIT_TERM"
	colAdmitType     = "ADMIT_TYPE"
	colID            = "ID"
	colAcadProg      = "ACAD_PROG"
	colStatus        = "STATUS"
	colEffDate       = "EFFDT"
	colTerm          = "STRM"
	colCourseID      = "COURSE_ID"
	colClassNbr      = "CLASS_NBR"
	colDepartment    = "DEPARTMENT"
	colCourseName    = "COURSE_NAME"
	colCreditHours   = "CREDIT_HOURS"
	colDeptCode      = "DEPT_CODE"
	colDeptName      = "DEPT_NAME"
	colContactPerson = "CONTACT_PERSON"
	colLocation      = "LOCATION"
)

// Normalizer turns the four raw source tables into typed relations with one
// shared convention: identifiers and free text trimmed, code-like fields
// (term, department code, program code, admission type) upper-cased, person
// and department names case-preserved, credit hours cast to int. It never
// drops rows and never looks across relations.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize maps the raw tables onto the typed model. Missing columns yield
// empty fields; the Validator decides which of those are violations.
func (n *Normalizer) Normalize(students, programs, enrollments, departments models.Table) models.Dataset {
	return models.Dataset{
		Students:    n.normalizeStudents(students),
		Programs:    n.normalizePrograms(programs),
		Enrollments: n.normalizeEnrollments(enrollments),
		Departments: n.normalizeDepartments(departments),
	}
}

func (n *Normalizer) normalizeStudents(t models.Table) []models.Student {
	out := make([]models.Student, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, models.Student{
			EMPLID:    trim(t.Value(row, colEMPLID)),
			FirstName: trim(t.Value(row, colFirstName)),
			LastName:  trim(t.Value(row, colLastName)),
			Email:     trim(t.Value(row, colEmail)),
			AdmitTerm: code(t.Value(row, colAdmitTerm)),
			AdmitType: code(t.Value(row, colAdmitType)),
		})
	}
	return out
}

func (n *Normalizer) normalizePrograms(t models.Table) []models.AcademicProgram {
	out := make([]models.AcademicProgram, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, models.AcademicProgram{
			ID:            trim(t.Value(row, colID)),
			EMPLID:        trim(t.Value(row, colEMPLID)),
			ProgramCode:   code(t.Value(row, colAcadProg)),
			Status:        code(t.Value(row, colStatus)),
			EffectiveDate: trim(t.Value(row, colEffDate)),
		})
	}
	return out
}

func (n *Normalizer) normalizeEnrollments(t models.Table) []models.Enrollment {
	out := make([]models.Enrollment, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, models.Enrollment{
			EMPLID:      trim(t.Value(row, colEMPLID)),
			Term:        code(t.Value(row, colTerm)),
			CourseID:    trim(t.Value(row, colCourseID)),
			Section:     trim(t.Value(row, colClassNbr)),
			DeptCode:    code(t.Value(row, colDepartment)),
			CourseName:  trim(t.Value(row, colCourseName)),
			CreditHours: castCreditHours(t.Value(row, colCreditHours)),
		})
	}
	return out
}

func (n *Normalizer) normalizeDepartments(t models.Table) []models.Department {
	out := make([]models.Department, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, models.Department{
			Code:          code(t.Value(row, colDeptCode)),
			Name:          trim(t.Value(row, colDeptName)),
			ContactPerson: trim(t.Value(row, colContactPerson)),
			Location:      trim(t.Value(row, colLocation)),
		})
	}
	return out
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

// code normalizes a code-like field: trimmed and upper-cased.
func code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// castCreditHours converts a raw credit value to an integer. Integer text
// parses directly; decimal text truncates toward zero; anything else,
// including empty, becomes 0. The cast never fails.
func castCreditHours(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}

	return 0
}
