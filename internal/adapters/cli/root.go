package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "greeter",
		Short: "Greeter CLI - Deliver greetings and browse their history",
		Long: `Greeter CLI delivers greetings and keeps a record of every one.

Each command runs through the same dispatch pipeline the daemon uses,
so requests are validated and logged identically in both.

Examples:
  greeter greet --name Ada
  greeter history --limit 10
  greeter history --name Ada
  greeter stats
  greeter purge --older-than 720h`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (defaults to standard search paths)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log each dispatch to stderr")

	// Add commands
	rootCmd.AddCommand(NewGreetCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewPurgeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
