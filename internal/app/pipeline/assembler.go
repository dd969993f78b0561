package pipeline

import (
	"sort"

	"github.com/yigit/unireport/internal/app/models"
)

// Assembler joins term totals, the focused department and student identity
// into the final report rows. The join preserves the totals side: a row is
// never dropped for a missing student or focus match, though post-clean both
// always resolve.
type Assembler struct{}

// NewAssembler creates a new Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble builds one report row per term total, ordered ascending by
// student id then term.
func (a *Assembler) Assemble(totals []models.TermTotal, focus []models.FocusedDept, students map[string]models.Student) []models.ReportRow {
	focusByKey := make(map[models.StudentTerm]models.FocusedDept, len(focus))
	for _, f := range focus {
		focusByKey[models.StudentTerm{EMPLID: f.EMPLID, Term: f.Term}] = f
	}

	out := make([]models.ReportRow, 0, len(totals))
	for _, t := range totals {
		row := models.ReportRow{
			StudentID:    t.EMPLID,
			Term:         t.Term,
			TotalCredits: t.Credits,
		}
		if s, ok := students[t.EMPLID]; ok {
			row.LastName = s.LastName
		}
		if f, ok := focusByKey[models.StudentTerm{EMPLID: t.EMPLID, Term: t.Term}]; ok {
			row.FocusedDeptName = f.DisplayName
			row.FocusedDeptContact = f.Contact
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].Term < out[j].Term
	})
	return out
}
