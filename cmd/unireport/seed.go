package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yigit/unireport/internal/bootstrap"
	"github.com/yigit/unireport/internal/seed"
)

var seedDir string

// seedCmd writes a small demo input set for trying the pipeline
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write sample input files",
	Long: `Write a small student snapshot, enrollment extract and department
directory into a directory. The rows carry one of each repairable
defect, so "unireport run --input <dir>" over them demonstrates the
full validation and cleaning battery.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", "KU_Input", "Directory to write the sample input files into")
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	return seed.WriteSampleInputs(context.Background(), seedDir, lgr)
}
