package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/greeter-go/internal/application/greeting/queries"
	"github.com/andrescamacho/greeter-go/internal/mediator"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate greeting statistics",
		Long: `Show how many greetings have been delivered, total and per name.

Example:
  greeter stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
}

// runStats executes the stats command
func runStats() error {
	m, err := buildMediator()
	if err != nil {
		return err
	}

	response, err := mediator.Send[*queries.GetStatsResponse](context.Background(), m, &queries.GetStatsQuery{})
	if err != nil {
		return fmt.Errorf("failed to query stats: %w", err)
	}

	displayStats(response)

	return nil
}

// displayStats formats and displays greeting statistics
func displayStats(response *queries.GetStatsResponse) {
	fmt.Printf("\nGREETING STATISTICS\n")
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	if len(response.ByName) == 0 {
		fmt.Println("No greetings recorded")
		return
	}

	// Most greeted first, ties broken by name
	names := make([]string, 0, len(response.ByName))
	for name := range response.ByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if response.ByName[names[i]] != response.ByName[names[j]] {
			return response.ByName[names[i]] > response.ByName[names[j]]
		}
		return names[i] < names[j]
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Name\tGreetings")
	fmt.Fprintln(w, "────\t─────────")

	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\n", name, response.ByName[name])
	}

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
	fmt.Printf("Total: %d greetings\n\n", response.Total)
}
