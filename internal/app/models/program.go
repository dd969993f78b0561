package models

// AcademicProgram represents a program record owned by a student.
// Rows are raw storage: they are normalized, validated, cleaned and persisted,
// but never aggregated into the report.
type AcademicProgram struct {
	ID            string `json:"id" db:"id"`
	EMPLID        string `json:"emplid" db:"emplid"` // Owning student; must resolve post-clean
	ProgramCode   string `json:"programCode" db:"acad_prog"`
	Status        string `json:"status,omitempty" db:"status"`
	EffectiveDate string `json:"effectiveDate,omitempty" db:"effdt"`
}

// Key returns the program's natural key. Program history keeps multiple rows
// per (EMPLID, ACAD_PROG) with different effective dates, so only a row with
// every field identical counts as a duplicate.
func (p AcademicProgram) Key() string {
	return p.ID + "\x1f" + p.EMPLID + "\x1f" + p.ProgramCode + "\x1f" + p.Status + "\x1f" + p.EffectiveDate
}
