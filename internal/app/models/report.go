package models

// TermTotal is the total credit load for one (student, term).
type TermTotal struct {
	EMPLID  string
	Term    string
	Credits int
}

// DeptSubtotal is the credit subtotal one department contributed to a
// (student, term), grouped by the code recorded on the enrollment whether or
// not it resolves to a Department.
type DeptSubtotal struct {
	EMPLID   string
	Term     string
	DeptCode string
	Credits  int
}

// FocusedDept is the rank-1 department for a (student, term): the one with
// the highest credit subtotal, ties broken alphabetically by resolved display
// name. Contact stays empty when the code resolved to no Department.
type FocusedDept struct {
	EMPLID      string
	Term        string
	DeptCode    string
	DisplayName string
	Contact     string
}

// ReportRow is one line of the final report, keyed by (StudentID, Term).
// FocusedDeptContact serializes as an empty CSV field when absent, never a
// placeholder.
type ReportRow struct {
	StudentID          string
	LastName           string
	Term               string
	TotalCredits       int
	FocusedDeptName    string
	FocusedDeptContact string
}
