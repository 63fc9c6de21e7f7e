// Package cli implements the streamctl command-line interface.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	uploadCmd.Flags().StringP("name", "n", "", "Filename to store on the server (defaults to the local basename)")
	downloadCmd.Flags().StringP("output", "o", "", "Output path (defaults to the video ID's basename)")
	downloadCmd.Flags().Bool("thumbnail", false, "Download the video's thumbnail instead of the file itself")
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
}

var uploadCmd = &cobra.Command{
	Use:   "upload <directory> <file>",
	Short: "Upload a local video file into a server directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		directory, filePath := args[0], args[1]
		name, err := cmd.Flags().GetString("name")
		if err != nil {
			return err
		}
		if name == "" {
			name = filepath.Base(filePath)
		}

		ack, err := client.UploadVideo(cmd.Context(), directory, name, filePath)
		if err != nil {
			return err
		}
		return printJSON(cmd, ack)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <video-id>",
	Short: "Download a video (or its thumbnail) to a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient()
		defer client.Close()

		videoID := args[0]
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		thumbnail, err := cmd.Flags().GetBool("thumbnail")
		if err != nil {
			return err
		}
		if output == "" {
			output = defaultOutputName(videoID, thumbnail)
		}

		if thumbnail {
			err = client.DownloadThumbnail(cmd.Context(), videoID, output)
		} else {
			err = client.DownloadVideo(cmd.Context(), videoID, output)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", output)
		return nil
	},
}

// defaultOutputName derives a local filename from a video ID such as
// "movies:clip.mp4".
func defaultOutputName(videoID string, thumbnail bool) string {
	name := videoID
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	name = filepath.Base(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "video"
	}
	if thumbnail {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	}
	return name
}
