package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Value(t *testing.T) {
	table := Table{
		Name:    "student",
		Columns: []string{"EMPLID", "First_Name", "LAST_NAME"},
		Rows: [][]string{
			{"1000000", "Emma", "Anderson"},
			{"1000001"},
		},
	}

	assert.Equal(t, "Emma", table.Value(table.Rows[0], "first_name"), "column lookup ignores case")
	assert.Equal(t, "Anderson", table.Value(table.Rows[0], "LAST_NAME"))
	assert.Equal(t, "", table.Value(table.Rows[0], "email"), "absent column reads as empty")
	assert.Equal(t, "", table.Value(table.Rows[1], "last_name"), "short row reads as empty")

	assert.Equal(t, 2, table.ColumnIndex("last_name"))
	assert.Equal(t, -1, table.ColumnIndex("nope"))
}

func TestTable_Empty(t *testing.T) {
	assert.True(t, Table{Columns: []string{"EMPLID"}}.Empty())
	assert.False(t, Table{Rows: [][]string{{"1000000"}}}.Empty())
}

func TestEnrollment_Key(t *testing.T) {
	a := Enrollment{EMPLID: "S1", Term: "2244", CourseID: "CS101", Section: "1"}
	b := a
	b.Section = "2"

	assert.NotEqual(t, a.Key(), b.Key(), "section is part of the identity")
	assert.Equal(t, a.Key(), Enrollment{EMPLID: "S1", Term: "2244", CourseID: "CS101", Section: "1", CreditHours: 4}.Key(),
		"credit hours are not part of the identity")
}

func TestAcademicProgram_Key(t *testing.T) {
	current := AcademicProgram{ID: "1", EMPLID: "S1", ProgramCode: "CS-BS", Status: "AC", EffectiveDate: "2024-08-19"}
	previous := current
	previous.EffectiveDate = "2023-08-21"

	assert.NotEqual(t, current.Key(), previous.Key(), "history rows are distinct records")
	assert.Equal(t, current.Key(), AcademicProgram{ID: "1", EMPLID: "S1", ProgramCode: "CS-BS", Status: "AC", EffectiveDate: "2024-08-19"}.Key())
}

func TestDepartment_DisplayName(t *testing.T) {
	assert.Equal(t, "Physics", Department{Code: "PHYS", Name: "Physics"}.DisplayName())
	assert.Equal(t, "PHYS", Department{Code: "PHYS"}.DisplayName(), "a nameless department shows its code")
}

func TestDataset_IndexesKeepFirstOccurrence(t *testing.T) {
	ds := Dataset{
		Students: []Student{
			{EMPLID: "S1", LastName: "First"},
			{EMPLID: "S1", LastName: "Second"},
		},
		Departments: []Department{
			{Code: "CS", ContactPerson: "Dr. A"},
			{Code: "CS", ContactPerson: "Dr. Z"},
		},
	}

	assert.Equal(t, "First", ds.StudentIndex()["S1"].LastName)
	assert.Equal(t, "Dr. A", ds.DepartmentIndex()["CS"].ContactPerson)
}

func TestEnrollment_StudentTerm(t *testing.T) {
	e := Enrollment{EMPLID: "S1", Term: "2244", CourseID: "CS101"}
	assert.Equal(t, StudentTerm{EMPLID: "S1", Term: "2244"}, e.StudentTerm())
}
