package pipeline

import (
	"github.com/yigit/unireport/internal/app/models"
)

// Builders for the typed rows the pipeline tests share.

func table(name string, columns []string, rows ...[]string) models.Table {
	return models.Table{Name: name, Columns: columns, Rows: rows}
}

func student(emplid, first, last string) models.Student {
	return models.Student{EMPLID: emplid, FirstName: first, LastName: last}
}

func program(id, emplid, code string) models.AcademicProgram {
	return models.AcademicProgram{ID: id, EMPLID: emplid, ProgramCode: code, Status: "AC", EffectiveDate: "2023-08-15"}
}

func enrollment(emplid, term, course, section, dept string, credits int) models.Enrollment {
	return models.Enrollment{EMPLID: emplid, Term: term, CourseID: course, Section: section, DeptCode: dept, CreditHours: credits}
}

func department(code, name, contact string) models.Department {
	return models.Department{Code: code, Name: name, ContactPerson: contact}
}

// defectDataset carries at least one row per repairable defect class plus
// both tolerated warning states. The cleaner and validator tests pin their
// expected counts to this exact layout.
func defectDataset() models.Dataset {
	return models.Dataset{
		Students: []models.Student{
			student("S1", "Ada", "Lovelace"),
			student("S1", "Ada", "Lovelace"), // duplicate EMPLID
			student("S2", "Grace", "Hopper"),
			student("S3", "", "Turing"),        // missing first name
			student("S4", "Barbara", "Liskov"), // no enrollments
		},
		Programs: []models.AcademicProgram{
			program("P1", "S1", "CS-BS"),
			program("P1", "S1", "CS-BS"), // identical row
			program("P2", "S2", "MATH-BS"),
			program("P9", "S9", "PHYS-BS"), // no matching student
		},
		Enrollments: []models.Enrollment{
			enrollment("S1", "2244", "CS101", "1", "CS", 3),
			enrollment("S1", "2244", "CS101", "1", "CS", 4),      // duplicate key, differing credits
			enrollment("S1", "2244", "MATH201", "1", "MATH", 45), // over range
			enrollment("S2", "2244", "ART100", "1", "ART", 3),    // unknown department
			enrollment("S3", "2244", "CS102", "1", "CS", 3),      // orphaned once S3 is dropped
			enrollment("S9", "2244", "CS101", "2", "CS", 3),      // no matching student
			enrollment("S2", "2244", "", "1", "", -2),            // empty department, under range
		},
		Departments: []models.Department{
			department("CS", "Computer Science", "Dr. A"),
			department("CS", "Computer Science", "Dr. Z"), // duplicate code
			department("MATH", "Mathematics", "Dr. B"),
		},
	}
}
