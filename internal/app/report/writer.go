package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/pkg/logger"
)

// Header is the fixed column order of the output file.
var Header = []string{
	"student_id",
	"last_name",
	"term",
	"total_credits",
	"focused_department_name",
	"focused_department_contact",
}

// Writer emits the final CSV. The file is written to a temporary sibling and
// renamed into place, so a failed run never leaves a partial file at the
// output path.
type Writer struct {
	path string
}

// NewWriter creates a writer targeting path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Path returns the output path.
func (w *Writer) Path() string {
	return w.path
}

// Write renders the rows and atomically replaces the output file. An absent
// contact serializes as an empty field, never a placeholder.
func (w *Writer) Write(rows []models.ReportRow) error {
	tmp := w.path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(Header); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.StudentID,
			row.LastName,
			row.Term,
			strconv.Itoa(row.TotalCredits),
			row.FocusedDeptName,
			row.FocusedDeptContact,
		}
		if err := cw.Write(record); err != nil {
			file.Close()
			os.Remove(tmp)
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to flush report: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close report file: %w", err)
	}

	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move report into place: %w", err)
	}

	logger.Info().Str("path", w.path).Int("rows", len(rows)).Msg("Report written")
	return nil
}
