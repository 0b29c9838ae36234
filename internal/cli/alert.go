package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theshadowable/iws-sh/pkg/client"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertGetCmd())
	cmd.AddCommand(newAlertSummaryCmd())
	cmd.AddCommand(newAlertReadCmd())
	cmd.AddCommand(newAlertDismissCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var severity, status, alertType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.AlertListOptions{
				Severity: severity,
				Status:   status,
				Type:     alertType,
			}

			page, err := apiClient.Alerts().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(page)
			}

			t := NewTable("ID", "TYPE", "SEVERITY", "STATUS", "TITLE")
			for _, a := range page.Data {
				t.AddRow(
					a.ID,
					a.Type,
					formatSeverity(a.Severity),
					formatStatus(a.Status),
					truncate(a.Title, 50),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&alertType, "type", "", "filter by type")

	return cmd
}

func newAlertGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get alert details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := apiClient.Alerts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get alert: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(a)
			}

			fmt.Printf("ID:        %s\n", a.ID)
			fmt.Printf("Type:      %s\n", a.Type)
			fmt.Printf("Severity:  %s\n", formatSeverity(a.Severity))
			fmt.Printf("Status:    %s\n", a.Status)
			fmt.Printf("Title:     %s\n", a.Title)
			fmt.Printf("Message:   %s\n", a.Message)
			fmt.Printf("Created:   %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newAlertSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show alert counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary, err := apiClient.Alerts().Summary(ctx)
			if err != nil {
				return fmt.Errorf("failed to get alert summary: %w", err)
			}

			return printOutput(summary)
		},
	}
}

func newAlertReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Alerts().MarkRead(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to mark alert read: %w", err)
			}

			fmt.Printf("Alert %s marked as read\n", args[0])
			return nil
		},
	}
}

func newAlertDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Alerts().Dismiss(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to dismiss alert: %w", err)
			}

			fmt.Printf("Alert %s dismissed\n", args[0])
			return nil
		},
	}
}
