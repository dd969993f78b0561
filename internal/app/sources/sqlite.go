package sources

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/pkg/apperrors"
	"github.com/yigit/unireport/internal/pkg/logger"
)

// SQLiteSnapshot reads the snapshot tables from a SQLite database file.
type SQLiteSnapshot struct {
	db   *sql.DB
	path string
}

// NewSQLiteSnapshot opens the snapshot database at path. The file must
// already exist; a snapshot is never created by the pipeline.
func NewSQLiteSnapshot(path string) (*SQLiteSnapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewSourceError(fmt.Sprintf("snapshot database %s: %v", path, err))
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.NewSourceError(fmt.Sprintf("open snapshot database %s: %v", path, err))
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewSourceError(fmt.Sprintf("ping snapshot database %s: %v", path, err))
	}

	logger.Debug().Str("path", path).Msg("Snapshot database opened")

	return &SQLiteSnapshot{db: db, path: path}, nil
}

// Students reads the full student table.
func (s *SQLiteSnapshot) Students(ctx context.Context) (models.Table, error) {
	return s.readTable(ctx, StudentTable)
}

// Programs reads the full acad_prog table.
func (s *SQLiteSnapshot) Programs(ctx context.Context) (models.Table, error) {
	return s.readTable(ctx, ProgramTable)
}

// Close closes the underlying database handle.
func (s *SQLiteSnapshot) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *SQLiteSnapshot) readTable(ctx context.Context, name string) (models.Table, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+name)
	if err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("read table %s from %s: %v", name, s.path, err))
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("read columns of %s: %v", name, err))
	}

	table := models.Table{Name: name, Columns: columns}

	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		scan := make([]interface{}, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}

		if err := rows.Scan(scan...); err != nil {
			return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("scan row of %s: %v", name, err))
		}

		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("iterate table %s: %v", name, err))
	}

	return table, nil
}
