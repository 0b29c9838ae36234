package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(summary)
			}

			fmt.Println("Water Service Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			fmt.Printf("  Unread alerts:    %d\n", summary["unread"])
			fmt.Printf("  Read alerts:      %d\n", summary["read"])
			fmt.Printf("  Resolved alerts:  %d\n", summary["resolved"])

			unresolved := false
			leaks, err := apiClient.Leaks().List(ctx, nil)
			if err != nil {
				fmt.Printf("  Leak events:      (error: %v)\n", err)
				return nil
			}

			severe := 0
			for _, e := range leaks.Data {
				if !e.Resolved {
					unresolved = true
				}
				if e.Severity == "severe" {
					severe++
				}
			}
			fmt.Printf("  Leak events:      %d total", leaks.TotalItems)
			if severe > 0 {
				fmt.Printf(" (%d severe)", severe)
			}
			fmt.Println()
			if unresolved {
				fmt.Println("  Attention:        unresolved leak events on this account")
			}

			return nil
		},
	}
}
