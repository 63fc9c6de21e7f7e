// Package cli implements the streamctl command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	statsCmd.Flags().Bool("streaming", false, "Show streaming statistics instead of system statistics")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)

	schedulerCmd.AddCommand(schedulerStatusCmd)
	schedulerCmd.AddCommand(schedulerStatsCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerStopCmd)
	schedulerCmd.AddCommand(schedulerDeleteCmd)
	rootCmd.AddCommand(schedulerCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		status, err := client.CheckHealth(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, status)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show server system or streaming statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		streamingStats, err := cmd.Flags().GetBool("streaming")
		if err != nil {
			return err
		}

		var stats map[string]any
		if streamingStats {
			stats, err = client.StreamingStats(cmd.Context())
		} else {
			stats, err = client.SystemStats(cmd.Context())
		}
		if err != nil {
			return err
		}
		return printJSON(cmd, stats)
	},
}

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Inspect and control the server's deletion scheduler",
}

var schedulerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the scheduler is running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		status, err := client.SchedulerStatus(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, status)
	},
}

var schedulerStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show scheduler statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		stats, err := client.SchedulerStats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, stats)
	},
}

var schedulerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scheduler",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		ack, err := client.StartScheduler(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, ack)
	},
}

var schedulerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the scheduler",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		ack, err := client.StopScheduler(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, ack)
	},
}

var schedulerDeleteCmd = &cobra.Command{
	Use:   "delete <video-id>",
	Short: "Schedule a video for deletion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		ack, err := client.ScheduleVideoDeletion(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deletion scheduled for %s\n", args[0])
		return printJSON(cmd, ack)
	},
}
