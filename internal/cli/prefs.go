package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theshadowable/iws-sh/pkg/client"
)

func newPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage alert preferences",
	}

	cmd.AddCommand(newPrefsShowCmd())
	cmd.AddCommand(newPrefsSetCmd())

	return cmd
}

func newPrefsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current alert preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			p, err := apiClient.Preferences().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get preferences: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(p)
			}

			t := NewTable("SETTING", "VALUE")
			t.AddRow("low_balance_enabled", strconv.FormatBool(p.LowBalanceEnabled))
			t.AddRow("low_balance_threshold", strconv.FormatFloat(p.LowBalanceThreshold, 'f', 0, 64))
			t.AddRow("leak_detection_enabled", strconv.FormatBool(p.LeakDetectionEnabled))
			t.Render()
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	var (
		lowBalance    bool
		threshold     float64
		leakDetection bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update alert preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Start from the current values so unset flags keep them.
			current, err := apiClient.Preferences().Get(ctx)
			if err != nil {
				return fmt.Errorf("failed to get preferences: %w", err)
			}

			p := client.Preferences{
				LowBalanceEnabled:    current.LowBalanceEnabled,
				LowBalanceThreshold:  current.LowBalanceThreshold,
				LeakDetectionEnabled: current.LeakDetectionEnabled,
			}
			if cmd.Flags().Changed("low-balance") {
				p.LowBalanceEnabled = lowBalance
			}
			if cmd.Flags().Changed("threshold") {
				p.LowBalanceThreshold = threshold
			}
			if cmd.Flags().Changed("leak-detection") {
				p.LeakDetectionEnabled = leakDetection
			}

			updated, err := apiClient.Preferences().Update(ctx, p)
			if err != nil {
				return fmt.Errorf("failed to update preferences: %w", err)
			}

			fmt.Printf("Preferences updated (low balance threshold: IDR %.0f)\n", updated.LowBalanceThreshold)
			return nil
		},
	}

	cmd.Flags().BoolVar(&lowBalance, "low-balance", true, "Enable low balance alerts")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Low balance threshold in IDR")
	cmd.Flags().BoolVar(&leakDetection, "leak-detection", true, "Enable leak detection alerts")

	return cmd
}
