package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := &Options{}

	rootCmd := &cobra.Command{
		Use:   "opsfeed",
		Short: "Prioritized work feed for content operations",
		Long: `A CLI tool that pulls pending custom requests and scene assignments
from the operations dashboard and ranks them by urgency, so the team
always knows what to act on next.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeed(cmd, opts)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Feed flags live on the root so `opsfeed` and `opsfeed feed` work
	// identically.
	addFeedFlags(rootCmd, opts)

	rootCmd.AddCommand(NewCmdFeed(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdCache())
	rootCmd.AddCommand(NewCmdDismiss())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}
