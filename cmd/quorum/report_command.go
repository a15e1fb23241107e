package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quorum/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Write every enabled artifact to the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			result, err := ctx.run(cmd)
			if err != nil {
				return err
			}

			written, err := report.NewWriter(cfg, logger).WriteAll(cmd.Context(), result.ReportData())
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			rows, cols := result.Matrix.Dimensions()
			status := newStatusPrinter(cmd)
			status.section("quorum report " + result.RunID)
			status.line("Sessions", statusInfo, strconv.Itoa(cols))
			status.count("Skipped", len(result.Skipped))
			status.line("Members", statusInfo, strconv.Itoa(rows))
			status.count("Duplicates", len(result.Registry.SuspectedDuplicates()))
			status.line("Conflictual", statusInfo,
				fmt.Sprintf("%d / %d sessions", result.Deliberations.ConflictualSessions(), cols))
			for _, path := range written {
				status.line("Wrote", statusOK, path)
			}
			return nil
		},
	}
}
