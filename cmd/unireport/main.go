package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/unireport/internal/pkg/logger"
)

var (
	// Global flags
	configPath string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "unireport",
	Short: "Student-records reconciliation and term-focus reporting",
	Long: `unireport ingests a student-records snapshot, a pipe-delimited
enrollment extract and a JSON department file, validates and repairs
data-quality defects with an auditable trail, persists the cleaned
relations into a SQLite warehouse, and emits one CSV row per
(student, term) with the total credit load and the focused department.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default configs/config.yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("unireport failed")
		os.Exit(1)
	}
}
