package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/pkg/apperrors"
)

// DepartmentFile reads the department reference file, a JSON array of
// objects. Columns are the union of keys across all objects, sorted so the
// raw table shape is deterministic regardless of key order in the file.
type DepartmentFile struct {
	path string
}

// NewDepartmentFile creates a reader for the reference file at path.
func NewDepartmentFile(path string) *DepartmentFile {
	return &DepartmentFile{path: path}
}

// Read loads the whole reference file into a raw table.
func (f *DepartmentFile) Read() (models.Table, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("department file %s: %v", f.path, err))
	}

	var objects []map[string]interface{}
	if err := json.Unmarshal(data, &objects); err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("parse department file %s: %v", f.path, err))
	}

	table := models.Table{Name: "departments"}

	seen := make(map[string]bool)
	for _, obj := range objects {
		for key := range obj {
			if !seen[key] {
				seen[key] = true
				table.Columns = append(table.Columns, key)
			}
		}
	}
	sort.Strings(table.Columns)

	for _, obj := range objects {
		row := make([]string, len(table.Columns))
		for i, key := range table.Columns {
			row[i] = stringifyJSON(obj[key])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// stringifyJSON renders a decoded JSON value as raw cell text. Nulls and
// absent keys become empty strings.
func stringifyJSON(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
