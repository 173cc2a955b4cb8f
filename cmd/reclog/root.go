package main

import (
	"os"

	"github.com/spf13/cobra"

	"recording-logs/internal/client"
	"recording-logs/internal/viewer"
)

const defaultAPIBase = "http://localhost:8080"

type commandContext struct {
	apiBaseFlag *string
}

func (c *commandContext) viewer() *viewer.Viewer {
	base := *c.apiBaseFlag
	if base == "" {
		base = os.Getenv("API_BASE_URL")
	}
	if base == "" {
		base = defaultAPIBase
	}
	return viewer.New(client.New(base), newConsoleNotifier())
}

func newRootCommand() *cobra.Command {
	var apiBaseFlag string
	ctx := &commandContext{apiBaseFlag: &apiBaseFlag}

	rootCmd := &cobra.Command{
		Use:           "reclog",
		Short:         "Browse and requeue recording conversion logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiBaseFlag, "api-base", "", "Recording log API base URL")

	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newRequeueCommand(ctx))

	return rootCmd
}
