package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [task]",
		Short: "Show recorded runs of a task, or of every task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := ""
			if len(args) == 1 {
				task = args[0]
			}
			return c.app.History(cmd.Context(), task, globalOptions(cmd))
		},
	}
}
