package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"quorum/internal/deliberation"
	"quorum/internal/report"
)

type deliberationsJSON struct {
	Totals report.DeliberationTotals `json:"totals"`
	Years  []deliberation.YearTally  `json:"years"`
}

func newDeliberationsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var yearsOnly bool

	cmd := &cobra.Command{
		Use:     "deliberations",
		Aliases: []string{"votes"},
		Short:   "List conflictual sessions and the per-year breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.run(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if asJSON {
				summary := report.BuildSummary(result.ReportData())
				return printJSON(cmd, deliberationsJSON{Totals: summary.Deliberations, Years: summary.Years})
			}
			if yearsOnly {
				rows := make([][]string, 0, len(result.Years))
				for _, y := range result.Years {
					rows = append(rows, []string{
						strconv.Itoa(y.Year),
						strconv.Itoa(y.ConflictualSessions),
						strconv.Itoa(y.NonUnanimousDeliberations),
						strconv.Itoa(y.Dissent),
						strconv.Itoa(y.AbstentionOnly),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]column{left("Année"), right("Séances"), right("Délibérations"), right("Contre"), right("Abstention")},
					rows,
				))
				fmt.Fprintf(out, "Total: %d séances conflictuelles\n", deliberation.TotalConflictual(result.Years))
				return nil
			}
			fmt.Fprint(out, report.FormatDeliberations(result.Deliberations, result.Years))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output totals and yearly breakdown as JSON")
	cmd.Flags().BoolVar(&yearsOnly, "years", false, "Only show the per-year breakdown")
	cmd.MarkFlagsMutuallyExclusive("json", "years")
	return cmd
}
