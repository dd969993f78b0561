package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unireport/internal/pkg/apperrors"
)

func writeEnrollmentFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "enrollments.dat")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnrollmentFile_Read(t *testing.T) {
	path := writeEnrollmentFixture(t,
		"EMPLID|STRM|COURSE_ID|CLASS_NBR|DEPARTMENT|COURSE_NAME|CREDIT_HOURS\n"+
			"S1|2244|CS101|1|CS|Intro to Programming|3\n"+
			"S2|2244|MATH201|1|MATH\n"+
			"S3|2244|PHYS101|1|PHYS|Mechanics|4|stray\n")

	table, err := NewEnrollmentFile(path).Read()
	require.NoError(t, err)

	assert.Equal(t, "enrollments", table.Name)
	assert.Equal(t, []string{"EMPLID", "STRM", "COURSE_ID", "CLASS_NBR", "DEPARTMENT", "COURSE_NAME", "CREDIT_HOURS"}, table.Columns)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, []string{"S1", "2244", "CS101", "1", "CS", "Intro to Programming", "3"}, table.Rows[0])
	assert.Equal(t, []string{"S2", "2244", "MATH201", "1", "MATH", "", ""}, table.Rows[1], "short rows pad to the header width")
	assert.Equal(t, []string{"S3", "2244", "PHYS101", "1", "PHYS", "Mechanics", "4"}, table.Rows[2], "long rows truncate to the header width")
}

func TestEnrollmentFile_HeaderOnly(t *testing.T) {
	path := writeEnrollmentFixture(t, "EMPLID|STRM|COURSE_ID|CLASS_NBR|DEPARTMENT|COURSE_NAME|CREDIT_HOURS\n")

	table, err := NewEnrollmentFile(path).Read()
	require.NoError(t, err)

	assert.Len(t, table.Columns, 7)
	assert.True(t, table.Empty())
}

func TestEnrollmentFile_EmptyFile(t *testing.T) {
	path := writeEnrollmentFixture(t, "")

	table, err := NewEnrollmentFile(path).Read()
	require.NoError(t, err)

	assert.Empty(t, table.Columns)
	assert.True(t, table.Empty())
}

func TestEnrollmentFile_Missing(t *testing.T) {
	_, err := NewEnrollmentFile(filepath.Join(t.TempDir(), "absent.dat")).Read()

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnreadable)
}
