package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unireport/internal/app/models"
)

func TestNormalize_Students(t *testing.T) {
	raw := table("student",
		[]string{"EMPLID", "FIRST_NAME", "LAST_NAME", "EMAIL", "ADMIT_TERM", "ADMIT_TYPE"},
		[]string{"  1000000 ", " Emma ", "Anderson", " emma@ku.edu ", " 2208 ", "fyr"},
	)

	ds := NewNormalizer().Normalize(raw, models.Table{}, models.Table{}, models.Table{})

	require.Len(t, ds.Students, 1)
	assert.Equal(t, models.Student{
		EMPLID:    "1000000",
		FirstName: "Emma",
		LastName:  "Anderson",
		Email:     "emma@ku.edu",
		AdmitTerm: "2208",
		AdmitType: "FYR",
	}, ds.Students[0])
}

func TestNormalize_ColumnLookupIgnoresCase(t *testing.T) {
	raw := table("student",
		[]string{"emplid", "First_Name", "last_name"},
		[]string{"S1", "Ada", "Lovelace"},
	)

	ds := NewNormalizer().Normalize(raw, models.Table{}, models.Table{}, models.Table{})

	require.Len(t, ds.Students, 1)
	assert.Equal(t, "S1", ds.Students[0].EMPLID)
	assert.Equal(t, "Ada", ds.Students[0].FirstName)
	assert.Equal(t, "Lovelace", ds.Students[0].LastName)
}

func TestNormalize_MissingColumnsYieldEmptyFields(t *testing.T) {
	raw := table("student",
		[]string{"EMPLID"},
		[]string{"S1"},
	)

	ds := NewNormalizer().Normalize(raw, models.Table{}, models.Table{}, models.Table{})

	require.Len(t, ds.Students, 1)
	assert.Equal(t, "S1", ds.Students[0].EMPLID)
	assert.Empty(t, ds.Students[0].FirstName)
	assert.Empty(t, ds.Students[0].LastName)
	assert.Empty(t, ds.Students[0].Email)
}

func TestNormalize_Enrollments(t *testing.T) {
	raw := table("enrollments",
		[]string{"EMPLID", "STRM", "COURSE_ID", "CLASS_NBR", "DEPARTMENT", "COURSE_NAME", "CREDIT_HOURS"},
		[]string{"S1", " 2244 ", "CS101", "1001", " cs ", "  Intro to Programming ", " 3 "},
		[]string{"S2", "2244", "MATH201", "", "math", "Calculus II", "4.9"},
	)

	ds := NewNormalizer().Normalize(models.Table{}, models.Table{}, raw, models.Table{})

	require.Len(t, ds.Enrollments, 2)
	assert.Equal(t, models.Enrollment{
		EMPLID:      "S1",
		Term:        "2244",
		CourseID:    "CS101",
		Section:     "1001",
		DeptCode:    "CS",
		CourseName:  "Intro to Programming",
		CreditHours: 3,
	}, ds.Enrollments[0])

	assert.Equal(t, "MATH", ds.Enrollments[1].DeptCode)
	assert.Empty(t, ds.Enrollments[1].Section)
	assert.Equal(t, 4, ds.Enrollments[1].CreditHours, "decimal credits truncate toward zero")
}

func TestNormalize_ProgramsAndDepartments(t *testing.T) {
	programs := table("acad_prog",
		[]string{"ID", "EMPLID", "ACAD_PROG", "STATUS", "EFFDT"},
		[]string{" 1 ", "S1", " cs-bs ", " ac ", " 2023-08-15 "},
	)
	departments := table("departments",
		[]string{"DEPT_CODE", "DEPT_NAME", "CONTACT_PERSON", "LOCATION"},
		[]string{" cs ", " Computer Science ", " Dr. Alan Reed ", "Eaton Hall"},
	)

	ds := NewNormalizer().Normalize(models.Table{}, programs, models.Table{}, departments)

	require.Len(t, ds.Programs, 1)
	assert.Equal(t, models.AcademicProgram{
		ID:            "1",
		EMPLID:        "S1",
		ProgramCode:   "CS-BS",
		Status:        "AC",
		EffectiveDate: "2023-08-15",
	}, ds.Programs[0])

	require.Len(t, ds.Departments, 1)
	assert.Equal(t, "CS", ds.Departments[0].Code)
	assert.Equal(t, "Computer Science", ds.Departments[0].Name, "names keep their case")
	assert.Equal(t, "Dr. Alan Reed", ds.Departments[0].ContactPerson)
}

func TestNormalize_NeverDropsRows(t *testing.T) {
	students := table("student",
		[]string{"EMPLID", "FIRST_NAME", "LAST_NAME"},
		[]string{"", "", ""},
		[]string{"S1", "Ada", "Lovelace"},
		[]string{"S1", "Ada", "Lovelace"},
	)

	ds := NewNormalizer().Normalize(students, models.Table{}, models.Table{}, models.Table{})

	assert.Len(t, ds.Students, 3, "defective rows pass through for the validator to flag")
}

func TestCastCreditHours(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{" 4 ", 4},
		{"45", 45},
		{"-3", -3},
		{"3.0", 3},
		{"3.9", 3},
		{"-2.9", -2},
		{"", 0},
		{"   ", 0},
		{"three", 0},
		{"3credits", 0},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, castCreditHours(tc.in))
		})
	}
}
