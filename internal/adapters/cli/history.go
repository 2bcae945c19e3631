package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/queries"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var (
		name   string
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded greetings",
		Long: `List recorded greetings, newest first.

Results can be filtered by name and paged with limit and offset.

Examples:
  greeter history --limit 10
  greeter history --name Ada
  greeter history --limit 20 --offset 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(name, limit, offset)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by recipient name")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of greetings to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of greetings to skip")

	return cmd
}

// runHistory executes the history command
func runHistory(name string, limit, offset int) error {
	m, err := buildMediator()
	if err != nil {
		return err
	}

	query := &queries.GetHistoryQuery{
		Limit:  limit,
		Offset: offset,
	}
	if name != "" {
		query.Name = &name
	}

	response, err := mediator.Send[*queries.GetHistoryResponse](context.Background(), m, query)
	if err != nil {
		return fmt.Errorf("failed to query history: %w", err)
	}

	displayHistory(response)

	return nil
}

// displayHistory formats and displays the greeting history
func displayHistory(response *queries.GetHistoryResponse) {
	if len(response.Greetings) == 0 {
		fmt.Println("No greetings found")
		return
	}

	fmt.Printf("\nGREETINGS (Showing %d of %d total)\n", len(response.Greetings), response.Total)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Timestamp\tName\tMessage")
	fmt.Fprintln(w, "─────────\t────\t───────")

	for _, g := range response.Greetings {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			g.CreatedAt.Format("2006-01-02 15:04:05"),
			g.Name,
			g.Message,
		)
	}

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("Total: %d greetings\n\n", response.Total)
}
