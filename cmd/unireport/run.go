package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yigit/unireport/internal/bootstrap"
)

var (
	inputDir   string
	outputPath string
)

// runCmd executes one full pipeline batch
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline once",
	Long: `Load the three configured sources, validate and clean them, persist
the warehouse artifact and write the summary CSV. The run halts with a
non-zero exit on any fatal condition; the output path is never touched
on a failed run.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&inputDir, "input", "", "Directory holding student_info.sqlite3, enrollments.dat and departments.json (overrides config paths)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Report CSV path (overrides config)")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}

	if inputDir != "" {
		cfg.Sources.Snapshot.Path = filepath.Join(inputDir, "student_info.sqlite3")
		cfg.Sources.Enrollments.Path = filepath.Join(inputDir, "enrollments.dat")
		cfg.Sources.Departments.Path = filepath.Join(inputDir, "departments.json")
	}
	if outputPath != "" {
		cfg.Output.ReportPath = outputPath
	}

	deps, err := bootstrap.BuildDependencies(cfg, lgr)
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := deps.Runner.Run(ctx)
	if err != nil {
		return err
	}

	lgr.Info().
		Str("run_id", result.RunID).
		Int("report_rows", result.ReportRows).
		Int("defects", result.DefectCount).
		Int("repairs", result.RepairCount).
		Int("warnings", result.WarningCount).
		Str("report", deps.Writer.Path()).
		Str("warehouse", deps.Store.Path()).
		Msg("Run succeeded")
	return nil
}
