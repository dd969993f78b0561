package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/unireport/internal/app/models"
	"github.com/yigit/unireport/internal/app/report"
	"github.com/yigit/unireport/internal/app/sources"
	"github.com/yigit/unireport/internal/app/warehouse"
	"github.com/yigit/unireport/internal/pkg/apperrors"
	"github.com/yigit/unireport/internal/pkg/logger"
	"github.com/yigit/unireport/internal/pkg/metrics"
)

// Runner drives one full batch: load, normalize, validate, clean,
// re-validate, persist, aggregate, rank, assemble, write. A run either
// completes every stage or halts; nothing ever reaches the output path on a
// halt.
type Runner struct {
	loader *sources.Loader
	store  *warehouse.Store
	writer *report.Writer

	normalizer *Normalizer
	validator  *Validator
	cleaner    *Cleaner
	aggregator *Aggregator
	ranker     *Ranker
	assembler  *Assembler
}

// NewRunner wires a runner over the configured loader, warehouse store and
// report writer.
func NewRunner(loader *sources.Loader, store *warehouse.Store, writer *report.Writer) *Runner {
	return &Runner{
		loader:     loader,
		store:      store,
		writer:     writer,
		normalizer: NewNormalizer(),
		validator:  NewValidator(),
		cleaner:    NewCleaner(),
		aggregator: NewAggregator(),
		ranker:     NewRanker(),
		assembler:  NewAssembler(),
	}
}

// Result summarizes a completed run.
type Result struct {
	RunID        string
	ReportRows   int
	DefectCount  int
	RepairCount  int
	WarningCount int
}

// Run executes the pipeline once. Every returned error is fatal for the
// run; the caller logs it and exits non-zero.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	startedAt := time.Now()

	lgr := logger.Component("pipeline").With().Str("run_id", runID).Logger()
	rec := metrics.NewRecorder()

	lgr.Info().Msg("Pipeline run started")

	step := rec.StartStep("load sources")
	bundle, err := r.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	step.Stop(len(bundle.Students.Rows) + len(bundle.Programs.Rows) + len(bundle.Enrollments.Rows) + len(bundle.Departments.Rows))

	step = rec.StartStep("normalize")
	ds := r.normalizer.Normalize(bundle.Students, bundle.Programs, bundle.Enrollments, bundle.Departments)
	step.Stop(datasetRows(ds))

	step = rec.StartStep("validate")
	rep, err := r.validator.Validate(ds)
	if err != nil {
		return nil, err
	}
	step.Stop(-1)
	logValidation(lgr, rep)

	defectCount := defectRows(rep)

	var audit []AuditEntry
	if rep.HasDefects() {
		step = rec.StartStep("clean")
		cleaned, entries := r.cleaner.Clean(ds, rep)
		audit = entries
		step.Stop(len(entries))

		for _, e := range audit {
			lgr.Debug().
				Str("class", e.Class).
				Str("key", e.Key).
				Str("action", e.Action).
				Str("detail", e.Detail).
				Msg("Repair applied")
		}
		lgr.Info().
			Int("repairs", len(audit)).
			Strs("classes", rep.DefectClasses()).
			Msg("Cleaning finished")

		step = rec.StartStep("revalidate")
		recheck, err := r.validator.Validate(cleaned)
		if err != nil {
			return nil, err
		}
		step.Stop(-1)

		if recheck.HasDefects() {
			return nil, apperrors.NewResidualError(
				"defect classes remain after cleaning: " + strings.Join(recheck.DefectClasses(), ", "))
		}

		ds = cleaned
	}

	step = rec.StartStep("persist warehouse")
	meta := warehouse.RunMeta{
		RunID:       runID,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
		DefectCount: defectCount,
		RepairCount: len(audit),
	}
	if err := r.store.Replace(ctx, ds, meta); err != nil {
		return nil, err
	}
	step.Stop(datasetRows(ds))

	step = rec.StartStep("aggregate")
	totals := r.aggregator.TermTotals(ds.Enrollments)
	subtotals := r.aggregator.DeptSubtotals(ds.Enrollments)
	step.Stop(len(totals))

	step = rec.StartStep("rank focus")
	focus := r.ranker.Focus(subtotals, ds.DepartmentIndex())
	step.Stop(len(focus))

	step = rec.StartStep("assemble report")
	rows := r.assembler.Assemble(totals, focus, ds.StudentIndex())
	step.Stop(len(rows))

	if len(rows) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyReport, "no summary rows were produced")
	}

	step = rec.StartStep("write report")
	if err := r.writer.Write(rows); err != nil {
		return nil, err
	}
	step.Stop(len(rows))

	rec.Summarize(lgr)
	lgr.Info().Int("rows", len(rows)).Msg("Pipeline run completed")

	return &Result{
		RunID:        runID,
		ReportRows:   len(rows),
		DefectCount:  defectCount,
		RepairCount:  len(audit),
		WarningCount: warningRows(rep),
	}, nil
}

func datasetRows(ds models.Dataset) int {
	return len(ds.Students) + len(ds.Programs) + len(ds.Enrollments) + len(ds.Departments)
}

func defectRows(rep Report) int {
	total := 0
	for _, res := range rep.Results {
		if res.Severity == SeverityDefect {
			total += res.Count
		}
	}
	return total
}

func warningRows(rep Report) int {
	total := 0
	for _, res := range rep.Results {
		if res.Severity == SeverityWarning {
			total += res.Count
		}
	}
	return total
}

// logValidation logs one line per battery check that found rows. Defects log
// at warn: they are recoverable, and the run only fails if cleaning cannot
// eliminate them.
func logValidation(lgr zerolog.Logger, rep Report) {
	for _, res := range rep.Results {
		if res.Count == 0 {
			continue
		}
		ev := lgr.Warn()
		if res.Severity == SeverityWarning {
			ev = lgr.Info()
		}
		ev.
			Str("class", res.Class).
			Str("severity", string(res.Severity)).
			Int("count", res.Count).
			Strs("samples", res.Samples).
			Msg("Validation check flagged rows")
	}
}
