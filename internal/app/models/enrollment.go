package models

// Enrollment represents one course enrollment from the pipe-delimited log.
// Identity is the composite (EMPLID, Term, CourseID, Section); Section comes
// from an optional CLASS_NBR column and is empty when the source omits it.
type Enrollment struct {
	EMPLID     string `json:"emplid" db:"emplid"`   // Owning student; must resolve post-clean
	Term       string `json:"term" db:"strm"`       // Academic term code (STRM)
	CourseID   string `json:"courseId" db:"course_id"`
	Section    string `json:"section,omitempty" db:"class_nbr"`
	DeptCode   string `json:"deptCode" db:"department"` // May not resolve to a Department; tolerated
	CourseName string `json:"courseName,omitempty" db:"course_name"`
	// CreditHours is clamped to [0, 30] by cleaning; non-numeric source values
	// are already zero after normalization.
	CreditHours int `json:"creditHours" db:"credit_hours"`
}

// Key returns the enrollment's composite natural key.
func (e Enrollment) Key() string {
	return e.EMPLID + "\x1f" + e.Term + "\x1f" + e.CourseID + "\x1f" + e.Section
}

// StudentTerm identifies the report grain: one (student, term) pair.
type StudentTerm struct {
	EMPLID string
	Term   string
}

// StudentTerm returns the enrollment's report-grain key.
func (e Enrollment) StudentTerm() StudentTerm {
	return StudentTerm{EMPLID: e.EMPLID, Term: e.Term}
}
