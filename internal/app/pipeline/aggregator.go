package pipeline

import (
	"sort"

	"github.com/yigit/unireport/internal/app/models"
)

// Aggregator computes the two credit summations over the post-clean
// enrollment relation: totals per (student, term) and subtotals per
// (student, term, department). Both group by the department code recorded on
// the enrollment whether or not it resolves to a Department. Pure functions;
// results ordered by natural key.
type Aggregator struct{}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// TermTotals sums credit hours per (student, term).
func (a *Aggregator) TermTotals(enrollments []models.Enrollment) []models.TermTotal {
	sums := make(map[models.StudentTerm]int)
	for _, e := range enrollments {
		sums[e.StudentTerm()] += e.CreditHours
	}

	out := make([]models.TermTotal, 0, len(sums))
	for key, credits := range sums {
		out = append(out, models.TermTotal{EMPLID: key.EMPLID, Term: key.Term, Credits: credits})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EMPLID != out[j].EMPLID {
			return out[i].EMPLID < out[j].EMPLID
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// DeptSubtotals sums credit hours per (student, term, department code).
func (a *Aggregator) DeptSubtotals(enrollments []models.Enrollment) []models.DeptSubtotal {
	type key struct {
		st   models.StudentTerm
		dept string
	}

	sums := make(map[key]int)
	for _, e := range enrollments {
		sums[key{st: e.StudentTerm(), dept: e.DeptCode}] += e.CreditHours
	}

	out := make([]models.DeptSubtotal, 0, len(sums))
	for k, credits := range sums {
		out = append(out, models.DeptSubtotal{
			EMPLID:   k.st.EMPLID,
			Term:     k.st.Term,
			DeptCode: k.dept,
			Credits:  credits,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EMPLID != out[j].EMPLID {
			return out[i].EMPLID < out[j].EMPLID
		}
		if out[i].Term != out[j].Term {
			return out[i].Term < out[j].Term
		}
		return out[i].DeptCode < out[j].DeptCode
	})
	return out
}
