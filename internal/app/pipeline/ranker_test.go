package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unireport/internal/app/models"
)

func subtotal(emplid, term, dept string, credits int) models.DeptSubtotal {
	return models.DeptSubtotal{EMPLID: emplid, Term: term, DeptCode: dept, Credits: credits}
}

func deptIndex(departments ...models.Department) map[string]models.Department {
	idx := make(map[string]models.Department, len(departments))
	for _, d := range departments {
		idx[d.Code] = d
	}
	return idx
}

func TestFocus_HighestCreditsWins(t *testing.T) {
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "MATH", 3),
		subtotal("S1", "2244", "PHYS", 7),
		subtotal("S1", "2244", "CS", 3),
	}
	departments := deptIndex(
		department("PHYS", "Physics", "Dr. James Wilson"),
		department("MATH", "Mathematics", "Dr. B"),
		department("CS", "Computer Science", "Dr. A"),
	)

	focus := NewRanker().Focus(subtotals, departments)

	require.Len(t, focus, 1)
	assert.Equal(t, models.FocusedDept{
		EMPLID:      "S1",
		Term:        "2244",
		DeptCode:    "PHYS",
		DisplayName: "Physics",
		Contact:     "Dr. James Wilson",
	}, focus[0])
}

func TestFocus_TieBreaksAlphabeticallyOnDisplayName(t *testing.T) {
	// Both codes resolve, so their names compete: "Computer Science" sorts
	// before "Mathematics".
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "MATH", 6),
		subtotal("S1", "2244", "CS", 6),
	}
	departments := deptIndex(
		department("MATH", "Mathematics", "Dr. B"),
		department("CS", "Computer Science", "Dr. A"),
	)

	focus := NewRanker().Focus(subtotals, departments)

	require.Len(t, focus, 1)
	assert.Equal(t, "CS", focus[0].DeptCode)
	assert.Equal(t, "Computer Science", focus[0].DisplayName)
	assert.Equal(t, "Dr. A", focus[0].Contact)
}

func TestFocus_TieUsesNamesNotCodes(t *testing.T) {
	// By code ZZ would lose to AA; the resolved names must decide instead.
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "AA", 3),
		subtotal("S1", "2244", "ZZ", 3),
	}
	departments := deptIndex(
		department("AA", "Zoology", "Dr. Z"),
		department("ZZ", "Art History", "Dr. A"),
	)

	focus := NewRanker().Focus(subtotals, departments)

	require.Len(t, focus, 1)
	assert.Equal(t, "ZZ", focus[0].DeptCode)
	assert.Equal(t, "Art History", focus[0].DisplayName)
}

func TestFocus_TieComparisonFoldsCase(t *testing.T) {
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "BIO", 3),
		subtotal("S1", "2244", "ANTH", 3),
	}
	departments := deptIndex(
		department("BIO", "Biology", "Dr. B"),
		department("ANTH", "anthropology", "Dr. A"),
	)

	focus := NewRanker().Focus(subtotals, departments)

	require.Len(t, focus, 1)
	assert.Equal(t, "ANTH", focus[0].DeptCode, "case must not put lowercase names last")
}

func TestFocus_UnresolvedCodeRanksByRawCode(t *testing.T) {
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "PHYS", 3),
		subtotal("S1", "2244", "MATH", 3),
	}

	focus := NewRanker().Focus(subtotals, map[string]models.Department{})

	require.Len(t, focus, 1)
	assert.Equal(t, "MATH", focus[0].DeptCode)
	assert.Equal(t, "MATH", focus[0].DisplayName, "an orphan code is shown verbatim")
	assert.Empty(t, focus[0].Contact, "no placeholder contact for an orphan code")
}

func TestFocus_EmptyDepartmentNameFallsBackToCode(t *testing.T) {
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "STAT", 3),
	}
	departments := deptIndex(models.Department{Code: "STAT", ContactPerson: "Dr. S"})

	focus := NewRanker().Focus(subtotals, departments)

	require.Len(t, focus, 1)
	assert.Equal(t, "STAT", focus[0].DisplayName)
	assert.Equal(t, "Dr. S", focus[0].Contact, "a matched department keeps its contact even without a name")
}

func TestFocus_IdenticalDisplayNamesFallBackToCode(t *testing.T) {
	// Two distinct codes resolving to the same name; the lower code keeps
	// the order total.
	subtotals := []models.DeptSubtotal{
		subtotal("S1", "2244", "CHEM2", 3),
		subtotal("S1", "2244", "CHEM1", 3),
	}
	departments := deptIndex(
		department("CHEM1", "Chemistry", "Dr. One"),
		department("CHEM2", "Chemistry", "Dr. Two"),
	)

	focus := NewRanker().Focus(subtotals, departments)

	require.Len(t, focus, 1)
	assert.Equal(t, "CHEM1", focus[0].DeptCode)
}

func TestFocus_OnePerStudentTermInOrder(t *testing.T) {
	subtotals := []models.DeptSubtotal{
		subtotal("S2", "2244", "CS", 3),
		subtotal("S1", "2246", "MATH", 3),
		subtotal("S1", "2244", "PHYS", 4),
	}

	focus := NewRanker().Focus(subtotals, map[string]models.Department{})

	require.Len(t, focus, 3)
	assert.Equal(t, "S1", focus[0].EMPLID)
	assert.Equal(t, "2244", focus[0].Term)
	assert.Equal(t, "S1", focus[1].EMPLID)
	assert.Equal(t, "2246", focus[1].Term)
	assert.Equal(t, "S2", focus[2].EMPLID)
}

func TestFocus_EmptySubtotals(t *testing.T) {
	focus := NewRanker().Focus(nil, map[string]models.Department{})

	assert.Empty(t, focus)
}
