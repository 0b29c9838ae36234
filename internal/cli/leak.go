package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theshadowable/iws-sh/pkg/client"
)

func newLeakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leak",
		Short: "Manage leak detection",
	}

	cmd.AddCommand(newLeakListCmd())
	cmd.AddCommand(newLeakGetCmd())
	cmd.AddCommand(newLeakDetectCmd())
	cmd.AddCommand(newLeakResolveCmd())

	return cmd
}

func newLeakListCmd() *cobra.Command {
	var deviceID, severity string
	var unresolvedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leak events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := &client.LeakListOptions{
				DeviceID: deviceID,
				Severity: severity,
			}
			if unresolvedOnly {
				resolved := false
				opts.Resolved = &resolved
			}

			page, err := apiClient.Leaks().List(ctx, opts)
			if err != nil {
				return fmt.Errorf("failed to list leak events: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(page)
			}

			t := NewTable("ID", "DEVICE", "SEVERITY", "RATE (M3/H)", "LOSS (M3)", "RESOLVED")
			for _, e := range page.Data {
				t.AddRow(
					truncate(e.ID, 12),
					e.DeviceID,
					formatSeverity(e.Severity),
					strconv.FormatFloat(e.ConsumptionRate, 'f', 3, 64),
					strconv.FormatFloat(e.EstimatedLossM3, 'f', 2, 64),
					strconv.FormatBool(e.Resolved),
				)
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "filter by device ID")
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().BoolVar(&unresolvedOnly, "unresolved", false, "show only unresolved events")

	return cmd
}

func newLeakGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get leak event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := apiClient.Leaks().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get leak event: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(e)
			}

			fmt.Printf("ID:               %s\n", e.ID)
			fmt.Printf("Device:           %s\n", e.DeviceID)
			fmt.Printf("Severity:         %s\n", formatSeverity(e.Severity))
			fmt.Printf("Detected:         %s\n", e.DetectedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Consumption rate: %.3f m3/h\n", e.ConsumptionRate)
			fmt.Printf("Normal rate:      %.3f m3/h\n", e.NormalRate)
			fmt.Printf("Estimated loss:   %.2f m3\n", e.EstimatedLossM3)
			fmt.Printf("Estimated cost:   Rp %.0f\n", e.EstimatedCostIDR)
			fmt.Printf("Resolved:         %v\n", e.Resolved)
			if e.Notes != "" {
				fmt.Printf("Notes:            %s\n", e.Notes)
			}
			return nil
		},
	}
}

func newLeakDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <device-id>",
		Short: "Run leak detection for a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			analysis, err := apiClient.Leaks().Detect(ctx, args[0])
			if err != nil {
				return fmt.Errorf("leak detection failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(analysis)
			}

			if analysis.InsufficientData {
				fmt.Println("Not enough readings in the last 24 hours to classify")
				return nil
			}

			if !analysis.LeakDetected {
				fmt.Printf("No leak detected (avg %.3f m3/h, baseline %.3f m3/h)\n",
					analysis.AvgRate, analysis.Baseline)
				return nil
			}

			fmt.Printf("Leak detected: %s\n", formatSeverity(analysis.Severity))
			fmt.Printf("  Average rate:   %.3f m3/h\n", analysis.AvgRate)
			fmt.Printf("  Baseline rate:  %.3f m3/h\n", analysis.Baseline)
			fmt.Printf("  Estimated loss: %.2f m3/day\n", analysis.EstimatedLossM3)
			fmt.Printf("  Estimated cost: Rp %.0f/day\n", analysis.EstimatedCostIDR)
			return nil
		},
	}
}

func newLeakResolveCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Resolve a leak event (technician)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := apiClient.Leaks().Resolve(ctx, args[0], notes); err != nil {
				return fmt.Errorf("failed to resolve leak event: %w", err)
			}

			fmt.Printf("Leak event %s resolved\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "resolution notes")

	return cmd
}
