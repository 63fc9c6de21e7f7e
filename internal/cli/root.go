// Package cli implements the streamctl command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vistream-hq/vistream/pkg/streaming"
)

var (
	serverURL      string
	timeoutSeconds int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", defaultServerURL(), "Base URL of the streaming server")
	rootCmd.PersistentFlags().IntVarP(&timeoutSeconds, "timeout", "t", 30, "Request timeout in seconds")
}

// rootCmd defines the entry point for the streamctl application.
var rootCmd = &cobra.Command{
	Use:           "streamctl",
	Short:         "A command-line client for the video streaming server",
	Long:          "streamctl talks to a video streaming server: browse the catalog, inspect videos, transfer files, and control the cleanup scheduler.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute processes the CLI entry point.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "streamctl: %v\n", err)
		os.Exit(1)
	}
}

func defaultServerURL() string {
	if v := os.Getenv("VISTREAM_SERVER_URL"); v != "" {
		return v
	}
	return "http://localhost:9000"
}

// newClient builds a streaming client from the persistent flags.
func newClient() *streaming.Client {
	return streaming.New(serverURL,
		streaming.WithTimeout(time.Duration(timeoutSeconds)*time.Second),
	)
}

// printJSON renders v as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
