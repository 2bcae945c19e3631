package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
)

// NewPurgeCommand creates the purge command
func NewPurgeCommand() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete greetings older than a given age",
		Long: `Delete recorded greetings older than the given age.

The age is a Go duration string such as "24h" or "720h". A zero or
negative age is rejected.

Examples:
  greeter purge --older-than 24h
  greeter purge --older-than 720h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(olderThan)
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Delete greetings older than this age [required]")
	cmd.MarkFlagRequired("older-than")

	return cmd
}

// runPurge executes the purge command
func runPurge(olderThan time.Duration) error {
	m, err := buildMediator()
	if err != nil {
		return err
	}

	err = m.SendVoid(context.Background(), &commands.PurgeHistoryCommand{OlderThan: olderThan})
	if err != nil {
		return fmt.Errorf("failed to purge history: %w", err)
	}

	fmt.Printf("Purged greetings older than %s\n", olderThan)

	return nil
}
