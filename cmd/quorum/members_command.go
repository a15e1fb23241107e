package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

type memberJSON struct {
	Key      string   `json:"key"`
	Variants []string `json:"variants"`
	Present  int      `json:"present"`
}

func newMembersCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List canonical members, their spelling variants, and suspected duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := ctx.run(cmd)
			if err != nil {
				return err
			}
			registry := result.Registry
			keys := registry.Keys()

			if asJSON {
				payload := make([]memberJSON, 0, len(keys))
				for _, key := range keys {
					row, _ := result.Matrix.Row(key)
					payload = append(payload, memberJSON{Key: string(key), Variants: registry.Variants(key), Present: row.Present})
				}
				return printJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				row, _ := result.Matrix.Row(key)
				rows = append(rows, []string{string(key), strings.Join(registry.Variants(key), "; "), strconv.Itoa(row.Present)})
			}
			fmt.Fprintln(out, renderTable(
				[]column{left("Clé"), left("Variantes"), right("Présences")},
				rows,
			))

			suspects := registry.SuspectedDuplicates()
			fmt.Fprintln(out)
			status := newStatusPrinter(cmd)
			status.section("Possible duplicates")
			if len(suspects) == 0 {
				status.line("Duplicates", statusOK, "none")
				return nil
			}
			for _, s := range suspects {
				status.line(string(s.Short), statusWarn, string(s.Long))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output members as JSON")
	return cmd
}
