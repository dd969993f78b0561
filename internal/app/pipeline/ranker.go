package pipeline

import (
	"sort"
	"strings"

	"github.com/yigit/unireport/internal/app/models"
)

// Ranker picks the focused department per (student, term): the department
// with the highest credit subtotal, ties broken alphabetically by resolved
// display name. The display name is the Department's name when the code
// matches one, otherwise the raw code; the comparison folds case. A final
// tie-break on the raw code keeps the order total even when two distinct
// codes resolve to the same display name.
type Ranker struct{}

// NewRanker creates a new Ranker.
func NewRanker() *Ranker {
	return &Ranker{}
}

// Focus returns the rank-1 department for each (student, term) present in
// the subtotals, ordered by student then term. Contact stays empty when the
// code resolved to no Department.
func (r *Ranker) Focus(subtotals []models.DeptSubtotal, departments map[string]models.Department) []models.FocusedDept {
	partitions := make(map[models.StudentTerm][]models.DeptSubtotal)
	var order []models.StudentTerm
	for _, sub := range subtotals {
		key := models.StudentTerm{EMPLID: sub.EMPLID, Term: sub.Term}
		if _, ok := partitions[key]; !ok {
			order = append(order, key)
		}
		partitions[key] = append(partitions[key], sub)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].EMPLID != order[j].EMPLID {
			return order[i].EMPLID < order[j].EMPLID
		}
		return order[i].Term < order[j].Term
	})

	out := make([]models.FocusedDept, 0, len(order))
	for _, key := range order {
		ranked := partitions[key]
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Credits != ranked[j].Credits {
				return ranked[i].Credits > ranked[j].Credits
			}
			ni := strings.ToLower(resolveDisplayName(ranked[i].DeptCode, departments))
			nj := strings.ToLower(resolveDisplayName(ranked[j].DeptCode, departments))
			if ni != nj {
				return ni < nj
			}
			return ranked[i].DeptCode < ranked[j].DeptCode
		})

		top := ranked[0]
		focused := models.FocusedDept{
			EMPLID:      top.EMPLID,
			Term:        top.Term,
			DeptCode:    top.DeptCode,
			DisplayName: top.DeptCode,
		}
		if dept, ok := departments[top.DeptCode]; ok {
			focused.DisplayName = dept.DisplayName()
			focused.Contact = dept.ContactPerson
		}
		out = append(out, focused)
	}
	return out
}

// resolveDisplayName returns the name used for ranking comparisons: the
// matched Department's display name, or the raw code for an orphan reference.
func resolveDisplayName(deptCode string, departments map[string]models.Department) string {
	if dept, ok := departments[deptCode]; ok {
		return dept.DisplayName()
	}
	return deptCode
}
