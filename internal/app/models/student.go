package models

// Student defines a student row from the relational snapshot, keyed by EMPLID.
type Student struct {
	EMPLID    string `json:"emplid" db:"emplid"`         // Unique, stable student identifier
	FirstName string `json:"firstName" db:"first_name"`  // Required
	LastName  string `json:"lastName" db:"last_name"`    // Required; appears in the report
	Email     string `json:"email,omitempty" db:"email"` // Contact, optional
	AdmitTerm string `json:"admitTerm,omitempty" db:"admit_term"`
	AdmitType string `json:"admitType,omitempty" db:"admit_type"`
}

// Key returns the student's primary key.
func (s Student) Key() string {
	return s.EMPLID
}
