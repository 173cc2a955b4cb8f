package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var startFlag string
	var endFlag string

	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show the failure detail for a failed conversion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			v := ctx.viewer()
			if startFlag != "" && endFlag != "" {
				v.SetDateRange(startFlag, endFlag)
			}
			v.Search(cmd.Context())

			detail, ok := v.FailureDetail(taskID)
			if !ok {
				return fmt.Errorf("no failed conversion %s in the selected range", taskID)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Conversion of recording %s failed!\n\n", detail.TaskID)
			// verbatim, preformatted; never interpreted as markup
			fmt.Fprintln(out, detail.FailureMessage)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endFlag, "end", "", "End date (YYYY-MM-DD)")

	return cmd
}
