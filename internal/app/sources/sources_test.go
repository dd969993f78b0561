package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unireport/internal/pkg/apperrors"
)

func newTestLoader(t *testing.T) (*Loader, string) {
	t.Helper()

	dir := t.TempDir()

	snapshotPath := filepath.Join(dir, "snapshot.sqlite3")
	writeSnapshotFixture(t, snapshotPath)

	enrollmentsPath := filepath.Join(dir, "enrollments.dat")
	require.NoError(t, os.WriteFile(enrollmentsPath, []byte(
		"EMPLID|STRM|COURSE_ID|CLASS_NBR|DEPARTMENT|COURSE_NAME|CREDIT_HOURS\n"+
			"S1|2244|CS101|1|CS|Intro to Programming|3\n"+
			"S2|2244|MATH201|1|MATH|Calculus II|4\n"), 0o644))

	departmentsPath := filepath.Join(dir, "departments.json")
	require.NoError(t, os.WriteFile(departmentsPath, []byte(
		`[{"DEPT_CODE": "CS", "DEPT_NAME": "Computer Science", "CONTACT_PERSON": "Dr. A", "LOCATION": "Eaton Hall"}]`), 0o644))

	snapshot, err := NewSQLiteSnapshot(snapshotPath)
	require.NoError(t, err)
	t.Cleanup(snapshot.Close)

	return NewLoader(snapshot, NewEnrollmentFile(enrollmentsPath), NewDepartmentFile(departmentsPath)), dir
}

func TestLoader_LoadsAllSources(t *testing.T) {
	loader, _ := newTestLoader(t)

	bundle, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, bundle)

	assert.Len(t, bundle.Students.Rows, 2)
	assert.Len(t, bundle.Programs.Rows, 1)
	assert.Len(t, bundle.Enrollments.Rows, 2)
	assert.Len(t, bundle.Departments.Rows, 1)

	assert.Equal(t, "student", bundle.Students.Name)
	assert.Equal(t, "acad_prog", bundle.Programs.Name)
	assert.Equal(t, "enrollments", bundle.Enrollments.Name)
	assert.Equal(t, "departments", bundle.Departments.Name)
}

func TestLoader_AnyUnreadableSourceFailsTheLoad(t *testing.T) {
	loader, dir := newTestLoader(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "departments.json")))

	bundle, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnreadable)
	assert.Nil(t, bundle, "a partial bundle is never returned")
}
