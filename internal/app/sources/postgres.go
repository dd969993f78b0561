package sources

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/config"
	"github.com/yigit/unireport/internal/pkg/apperrors"
	"github.com/yigit/unireport/internal/pkg/logger"
)

// PostgresSnapshot reads the snapshot tables from a PostgreSQL database.
type PostgresSnapshot struct {
	pool *pgxpool.Pool
}

// NewPostgresSnapshot creates a connection pool against the configured
// snapshot database and verifies it is reachable.
func NewPostgresSnapshot(cfg *config.Config) (*PostgresSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.SnapshotConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	// A batch read needs only a handful of connections.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Unhealthy connection detected")
			return false
		}
		return true
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperrors.NewSourceError(fmt.Sprintf("create snapshot connection pool: %v", err))
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperrors.NewSourceError(fmt.Sprintf("connect to snapshot database: %v", err))
	}

	return &PostgresSnapshot{pool: pool}, nil
}

// Students reads the full student table.
func (s *PostgresSnapshot) Students(ctx context.Context) (models.Table, error) {
	return s.readTable(ctx, StudentTable)
}

// Programs reads the full acad_prog table.
func (s *PostgresSnapshot) Programs(ctx context.Context) (models.Table, error) {
	return s.readTable(ctx, ProgramTable)
}

// Close closes the connection pool.
func (s *PostgresSnapshot) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// readTable reads every row of the named table. Results are requested in
// text format so each value arrives as the server's textual rendering,
// matching the everything-is-text ingest contract.
func (s *PostgresSnapshot) readTable(ctx context.Context, name string) (models.Table, error) {
	rows, err := s.pool.Query(ctx, "SELECT * FROM "+name, pgx.QueryResultFormats{pgtype.TextFormatCode})
	if err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("read table %s: %v", name, err))
	}
	defer rows.Close()

	table := models.Table{Name: name}
	for _, fd := range rows.FieldDescriptions() {
		table.Columns = append(table.Columns, fd.Name)
	}

	for rows.Next() {
		raw := rows.RawValues()
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = string(v)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return models.Table{}, apperrors.NewSourceError(fmt.Sprintf("iterate table %s: %v", name, err))
	}

	return table, nil
}
