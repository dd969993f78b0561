package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unireport/internal/config"
	"github.com/yigit/unireport/internal/pkg/apperrors"
	"github.com/yigit/unireport/internal/seed"
)

func TestBuildDependencies_SQLite(t *testing.T) {
	inputDir := t.TempDir()
	require.NoError(t, seed.WriteSampleInputs(context.Background(), inputDir, zerolog.Nop()))

	cfg := &config.Config{}
	cfg.Sources.Snapshot.Driver = "sqlite"
	cfg.Sources.Snapshot.Path = filepath.Join(inputDir, seed.SnapshotFile)
	cfg.Sources.Enrollments.Path = filepath.Join(inputDir, seed.EnrollmentsFile)
	cfg.Sources.Departments.Path = filepath.Join(inputDir, seed.DepartmentsFile)
	cfg.Output.ReportPath = filepath.Join(t.TempDir(), "output.csv")
	cfg.Output.WarehousePath = filepath.Join(t.TempDir(), "ku.sqlite")

	deps, err := BuildDependencies(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(deps.Close)

	assert.NotNil(t, deps.Snapshot)
	assert.NotNil(t, deps.Loader)
	assert.NotNil(t, deps.Store)
	assert.NotNil(t, deps.Writer)
	assert.NotNil(t, deps.Runner)
	assert.Equal(t, cfg.Output.ReportPath, deps.Writer.Path())
}

func TestBuildDependencies_UnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Sources.Snapshot.Driver = "mysql"

	_, err := BuildDependencies(cfg, zerolog.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownSnapshot)
}
