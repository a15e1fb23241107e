package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quorum/internal/report"
)

func newPresenceCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var asTable bool
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "presence",
		Short: "Show the ranked attendance recap",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.run(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			summaries := result.Matrix.Summaries()

			switch {
			case asJSON:
				return printJSON(cmd, report.BuildSummary(result.ReportData()).Presence)
			case asCSV:
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				cells := report.CellValues{Present: cfg.Attendance.StatusPresent, Absent: cfg.Attendance.StatusAbsent}
				return report.WriteAttendanceCSV(out, result.Matrix, cells)
			case asTable:
				rows := make([][]string, 0, len(summaries))
				for i, s := range summaries {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						string(s.Key),
						strconv.Itoa(s.Present),
						strconv.Itoa(s.Total),
						strconv.FormatFloat(s.Percentage, 'f', 1, 64) + "%",
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{right("#"), left("Elu"), right("Présences"), right("Séances"), right("Taux")},
					rows,
				))
				return nil
			default:
				fmt.Fprint(out, report.FormatRecap(result.Matrix))
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the recap as JSON")
	cmd.Flags().BoolVar(&asTable, "table", false, "Output the recap as a table")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Output the full presence matrix as CSV")
	cmd.MarkFlagsMutuallyExclusive("json", "table", "csv")
	return cmd
}
