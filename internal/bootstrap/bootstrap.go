package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yigit/unireport/internal/app/pipeline"
	"github.com/yigit/unireport/internal/app/report"
	"github.com/yigit/unireport/internal/app/sources"
	"github.com/yigit/unireport/internal/app/warehouse"
	"github.com/yigit/unireport/internal/config"
	"github.com/yigit/unireport/internal/pkg/apperrors"
	"github.com/yigit/unireport/internal/pkg/logger"
)

// Dependencies holds everything one pipeline run needs.
type Dependencies struct {
	Snapshot sources.SnapshotSource
	Loader   *sources.Loader
	Store    *warehouse.Store
	Writer   *report.Writer
	Runner   *pipeline.Runner
	Logger   zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// An empty configPath falls back to configs/config.yaml.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// BuildDependencies wires the snapshot source, file readers, warehouse store
// and report writer configured in cfg into a ready Runner.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	snapshot, err := newSnapshotSource(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open snapshot source")
		return nil, err
	}
	deps.Snapshot = snapshot

	deps.Loader = sources.NewLoader(
		snapshot,
		sources.NewEnrollmentFile(cfg.Sources.Enrollments.Path),
		sources.NewDepartmentFile(cfg.Sources.Departments.Path),
	)

	store, err := warehouse.NewStore(cfg.Output.WarehousePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open warehouse database")
		snapshot.Close()
		return nil, err
	}
	deps.Store = store

	deps.Writer = report.NewWriter(cfg.Output.ReportPath)
	deps.Runner = pipeline.NewRunner(deps.Loader, deps.Store, deps.Writer)

	return deps, nil
}

// Close releases the snapshot connection and the warehouse handle.
func (d *Dependencies) Close() {
	if d.Snapshot != nil {
		d.Snapshot.Close()
	}
	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close warehouse database")
		}
	}
}

func newSnapshotSource(cfg *config.Config) (sources.SnapshotSource, error) {
	switch cfg.Sources.Snapshot.Driver {
	case "sqlite":
		return sources.NewSQLiteSnapshot(cfg.Sources.Snapshot.Path)
	case "postgres":
		return sources.NewPostgresSnapshot(cfg)
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrUnknownSnapshot,
			fmt.Sprintf("unknown snapshot driver %q", cfg.Sources.Snapshot.Driver))
	}
}
