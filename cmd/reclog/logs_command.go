package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var endFlag string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List conversion records in a date range",
		Long: "Lists recording conversion records created in the date range. " +
			"Without flags the range defaults to the last seven days.",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := ctx.viewer()
			if startFlag != "" || endFlag != "" {
				start, end := v.DateRange()
				if startFlag != "" {
					start = startFlag
				}
				if endFlag != "" {
					end = endFlag
				}
				v.SetDateRange(start, end)
				v.Search(cmd.Context())
			} else {
				v.Refresh(cmd.Context())
			}

			records := v.Records()
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no records in range")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecordsTable(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "End date (YYYY-MM-DD)")

	return cmd
}
