package sources

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/pkg/apperrors"
)

// EnrollmentFile reads the pipe-delimited enrollment extract. The first
// record is the header; every data row is padded or truncated to the
// header's width so ragged extracts still load.
type EnrollmentFile struct {
	path string
}

// NewEnrollmentFile creates a reader for the extract at path.
func NewEnrollmentFile(path string) *EnrollmentFile {
	return &EnrollmentFile{path: path}
}

// Read loads the whole extract into a raw table.
func (f *EnrollmentFile) Read() (models.Table, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("enrollment extract %s: %v", f.path, err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("parse enrollment extract %s: %v", f.path, err))
	}

	table := models.Table{Name: "enrollments"}
	if len(records) == 0 {
		return table, nil
	}

	table.Columns = records[0]
	width := len(table.Columns)

	for _, record := range records[1:] {
		row := make([]string, width)
		copy(row, record)
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
