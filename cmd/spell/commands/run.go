package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/spell/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run tasks and their prerequisites",
		Long: `Run tasks and their prerequisites. Every task runs at most once, and a task
whose declared outputs are newer than its inputs is skipped.

Parameters are set with --arg. "name=value" applies to each requested task
declaring "name"; "task.name=value" applies to "task" however it is reached.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			taskArgs, _ := cmd.Flags().GetStringArray("arg")
			force, _ := cmd.Flags().GetBool("force")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Options: globalOptions(cmd),
				Args:    taskArgs,
				Force:   force,
			})
		},
	}
	cmd.Flags().StringArrayP("arg", "a", nil, "Set a task parameter (name=value or task.name=value, repeatable)")
	cmd.Flags().Bool("force", false, "Run tasks even when their outputs are up to date")
	return cmd
}
