package models

// Dataset bundles the four normalized relations in source load order. Each
// pipeline stage consumes a Dataset and hands a new one forward; upstream
// relations are never mutated in place.
type Dataset struct {
	Students    []Student
	Programs    []AcademicProgram
	Enrollments []Enrollment
	Departments []Department
}

// DepartmentIndex builds a code → Department lookup. With duplicate codes the
// first occurrence wins, matching the cleaner's keep-first rule.
func (d Dataset) DepartmentIndex() map[string]Department {
	idx := make(map[string]Department, len(d.Departments))
	for _, dept := range d.Departments {
		if _, ok := idx[dept.Code]; !ok {
			idx[dept.Code] = dept
		}
	}
	return idx
}

// StudentIndex builds an EMPLID → Student lookup, first occurrence winning.
func (d Dataset) StudentIndex() map[string]Student {
	idx := make(map[string]Student, len(d.Students))
	for _, s := range d.Students {
		if _, ok := idx[s.EMPLID]; !ok {
			idx[s.EMPLID] = s
		}
	}
	return idx
}
