package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/commands"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// NewGreetCommand creates the greet command
func NewGreetCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "greet",
		Short: "Greet a person and record the greeting",
		Long: `Deliver a greeting to a person by name.

The greeting is validated, printed, and recorded in history. Names must be
non-empty, at most 64 characters, and not a reserved name such as "system".

Examples:
  greeter greet --name Ada
  greeter greet --name "Grace Hopper"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGreet(name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the person to greet [required]")
	cmd.MarkFlagRequired("name")

	return cmd
}

// runGreet executes the greet command
func runGreet(name string) error {
	m, err := buildMediator()
	if err != nil {
		return err
	}

	result, err := mediator.Send[*commands.GreetResponse](context.Background(), m, &commands.GreetCommand{Name: name})
	if err != nil {
		return fmt.Errorf("failed to greet: %w", err)
	}

	fmt.Println(result.Message)

	return nil
}
