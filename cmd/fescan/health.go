package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fescan-dev/fescan/app"
	"github.com/fescan-dev/fescan/domain"
	"github.com/fescan-dev/fescan/internal/config"
	"github.com/fescan-dev/fescan/internal/constants"
	"github.com/fescan-dev/fescan/internal/logging"
	"github.com/fescan-dev/fescan/internal/toolrunner"
	"github.com/fescan-dev/fescan/service"
	"github.com/spf13/cobra"
)

// HealthExitError carries a process exit code out of the health command
type HealthExitError struct {
	Code    int
	Message string
}

func (e *HealthExitError) Error() string {
	return e.Message
}

var (
	healthQuick      bool
	healthFix        bool
	healthOutputDir  string
	healthConfigPath string
	healthVerbose    bool
)

func healthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health [path]",
		Short: "Run all project health checks and grade the result",
		Long: `Run every health check against the project and write a graded report.

Checks run sequentially, each to completion before the next starts.
There is no per-check timeout: a hung tool blocks the run.

Exit codes:
  0 - No error-severity findings
  1 - At least one error-severity finding
  2 - The run itself failed (bad config, report not writable)

Examples:
  # Full health run on the current directory
  fescan health

  # Fast feedback: skip duplication, circular and boundary checks
  fescan health --quick

  # Let the linter fix what it can while checking
  fescan health --fix src/`,
		RunE:          runHealth,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().BoolVarP(&healthQuick, "quick", "q", false,
		"Skip the duplication, circular-dependency and boundary checks")
	cmd.Flags().BoolVar(&healthFix, "fix", false,
		"Pass an auto-fix directive to the checks that support it")
	cmd.Flags().StringVarP(&healthOutputDir, "output", "o", "",
		"Directory for the report artifacts (default <path>/"+constants.DefaultOutputDir+")")
	cmd.Flags().StringVarP(&healthConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&healthVerbose, "verbose", "v", false,
		"Show debug logging")

	return cmd
}

func runHealth(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	logging.InitLogger(healthVerbose)

	loader := service.NewConfigurationLoader()
	cfg, err := loader.LoadConfigForTarget(healthConfigPath, path)
	if err != nil {
		return &HealthExitError{Code: 2, Message: err.Error()}
	}

	pm := service.NewProgressManager(true)
	defer pm.Close()

	uc := app.NewHealthUseCase(cfg, toolrunner.NewExecRunner(), pm)
	healthReport, actionItems, err := uc.Execute(context.Background(), domain.HealthRequest{
		Path:      path,
		Quick:     healthQuick,
		Fix:       healthFix,
		OutputDir: healthOutputDir,
	})
	if err != nil {
		return &HealthExitError{Code: 2, Message: err.Error()}
	}

	printConsoleSummary(healthReport, actionItems, reportDir(path, healthOutputDir, cfg))

	if code := healthReport.ExitCode(); code != 0 {
		return &HealthExitError{Code: code}
	}
	return nil
}

func reportDir(path, override string, cfg *config.Config) string {
	if override != "" {
		return override
	}
	return filepath.Join(path, cfg.Output.Directory)
}

var statusPrinters = map[domain.CheckStatus]*color.Color{
	domain.CheckStatusPass: color.New(color.FgGreen),
	domain.CheckStatusWarn: color.New(color.FgYellow),
	domain.CheckStatusFail: color.New(color.FgRed),
	domain.CheckStatusSkip: color.New(color.FgHiBlack),
}

var gradeColors = map[domain.Grade]*color.Color{
	domain.GradeA: color.New(color.FgGreen, color.Bold),
	domain.GradeB: color.New(color.FgGreen),
	domain.GradeC: color.New(color.FgYellow, color.Bold),
	domain.GradeD: color.New(color.FgRed),
	domain.GradeF: color.New(color.FgRed, color.Bold),
}

func printConsoleSummary(r *domain.HealthReport, actionItems []string, outputDir string) {
	fmt.Println()
	for _, check := range r.Checks {
		printer, ok := statusPrinters[check.Status]
		if !ok {
			printer = color.New()
		}
		fmt.Printf("  %s  %-12s %s\n", printer.Sprintf("%-4s", check.Status), check.Name, check.Summary)
	}

	fmt.Println()
	gradePrinter, ok := gradeColors[r.Grade]
	if !ok {
		gradePrinter = color.New()
	}
	fmt.Printf("  Grade: %s   (%d errors, %d warnings, %d infos)\n",
		gradePrinter.Sprint(r.Grade), r.Totals.Errors, r.Totals.Warnings, r.Totals.Infos)

	fmt.Println()
	for i, item := range actionItems {
		fmt.Printf("  %d. %s\n", i+1, item)
	}

	fmt.Println()
	fmt.Printf("  Report written to %s\n", filepath.Join(outputDir, constants.MarkdownReportName))
}
