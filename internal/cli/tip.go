package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tip",
		Short: "Manage water saving tips",
	}

	cmd.AddCommand(newTipListCmd())
	cmd.AddCommand(newTipGenerateCmd())
	cmd.AddCommand(newTipViewedCmd())

	return cmd
}

func newTipListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List water saving tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			tips, err := apiClient.Tips().List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tips: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(tips)
			}

			t := NewTable("ID", "CATEGORY", "TITLE", "SAVINGS %", "VIEWED")
			for _, tp := range tips {
				t.AddRow(
					truncate(tp.ID, 12),
					tp.Category,
					truncate(tp.Title, 40),
					strconv.FormatFloat(tp.PotentialSavingsPct, 'f', 0, 64),
					strconv.FormatBool(tp.Viewed),
				)
			}
			t.Render()
			return nil
		},
	}
}

func newTipGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate tips from recent usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			tips, err := apiClient.Tips().Generate(ctx)
			if err != nil {
				return fmt.Errorf("tip generation failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(tips)
			}

			if len(tips) == 0 {
				fmt.Println("No new tips generated")
				return nil
			}

			for _, tp := range tips {
				fmt.Printf("[%s] %s\n", tp.Category, tp.Title)
				fmt.Printf("    %s\n", tp.Description)
			}
			return nil
		},
	}
}

func newTipViewedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewed <id>",
		Short: "Mark a tip as viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Tips().MarkViewed(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to mark tip viewed: %w", err)
			}

			fmt.Printf("Tip %s marked as viewed\n", args[0])
			return nil
		},
	}
}
