// Package commands implements the CLI commands for spell.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/spell/internal/app"
	"go.trai.ch/spell/internal/build"
	"go.trai.ch/spell/internal/core/domain"
)

// CLI represents the command line interface for spell.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, targetNames []string, opts app.RunOptions) error
	List(ctx context.Context, opts app.Options) error
	Config(ctx context.Context, path string, opts app.Options) error
	History(ctx context.Context, taskName string, opts app.Options) error
	SetVerbose(verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "spell",
		Short:         "Run parameterized tasks that skip themselves when their outputs are fresh",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v belongs to --verbose, so the version flag is registered without a shorthand.
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringP("taskfile", "f", domain.TaskfileName, "Path to the taskfile")
	flags.StringP("config", "c", "", "Extra config file merged above the project config")
	flags.StringArray("set", nil, "Set a context value (key=value, repeatable)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		c.app.SetVerbose(verbose)
		return nil
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// globalOptions collects the persistent flags of cmd.
func globalOptions(cmd *cobra.Command) app.Options {
	taskfile, _ := cmd.Flags().GetString("taskfile")
	config, _ := cmd.Flags().GetString("config")
	set, _ := cmd.Flags().GetStringArray("set")
	return app.Options{
		Taskfile:   taskfile,
		ConfigFile: config,
		Set:        set,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}
}
