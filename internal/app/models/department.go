package models

// Department is a lookup dimension from the JSON reference file. Enrollments
// referencing an unknown code are a valid, handled state, not an error.
type Department struct {
	Code          string `json:"deptCode" db:"dept_code"` // Unique department code
	Name          string `json:"deptName" db:"dept_name"`
	ContactPerson string `json:"contactPerson,omitempty" db:"contact_person"`
	Location      string `json:"location,omitempty" db:"location"`
}

// Key returns the department's primary key.
func (d Department) Key() string {
	return d.Code
}

// DisplayName resolves the name shown in the report: the department's name
// when present, the raw code otherwise.
func (d Department) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Code
}
