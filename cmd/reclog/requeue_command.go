package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRequeueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "requeue <task-id>",
		Short: "Resubmit a failed conversion to the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := ctx.viewer()
			ack, err := v.Requeue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(ack))
			return nil
		},
	}
}
