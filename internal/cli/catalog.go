// Package cli implements the streamctl command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	listCmd.Flags().StringP("directory", "d", "", "List only videos under this directory")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(directoriesCmd)
	rootCmd.AddCommand(validateCmd)
}

// listCmd prints the server's video catalog.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List videos available on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		directory, err := cmd.Flags().GetString("directory")
		if err != nil {
			return err
		}

		if directory != "" {
			videos, err := client.ListVideosByDirectory(cmd.Context(), directory)
			if err != nil {
				return err
			}
			return printJSON(cmd, videos)
		}

		videos, err := client.ListVideos(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, videos)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search videos by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		result, err := client.SearchVideos(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <video-id>",
	Short: "Show metadata for a single video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		video, err := client.GetVideoInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, video)
	},
}

// urlCmd prints the stream URL without touching the network.
var urlCmd = &cobra.Command{
	Use:   "url <video-id>",
	Short: "Print the streaming URL for a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		fmt.Fprintln(cmd.OutOrStdout(), client.StreamURL(args[0]))
		return nil
	},
}

var directoriesCmd = &cobra.Command{
	Use:   "directories",
	Short: "List video directories on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		dirs, err := client.ListDirectories(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, dirs)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <video-id>",
	Short: "Check whether a video file is intact and streamable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		report, err := client.ValidateVideo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, report)
	},
}
