package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytscribe/internal"
)

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL or ID]",
	Short: "Get transcript from YouTube captions",
	Example: `  # Get transcript from YouTube captions
  ytscribe transcript "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytscribe transcript tAP1eZYEuKA

  # Save transcript to file
  ytscribe transcript tAP1eZYEuKA -o transcript.txt

  # Print without timestamps, as flowing paragraphs
  ytscribe transcript tAP1eZYEuKA --paragraphs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleExtractionFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)

		result, err := extractWithSpinner(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		var transcript string
		if paragraphs, _ := cmd.Flags().GetBool("paragraphs"); paragraphs {
			text := internal.JoinSegmentText(result.Segments, 0)
			transcript = strings.Join(internal.FormatParagraphs(text, 0), "\n\n")
		} else {
			transcript = formatTranscript(result)
		}

		// Handle output flag
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

func init() {
	internal.AddExtractionFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	transcriptCmd.Flags().Bool("paragraphs", false, "Print without timestamps, grouped into paragraphs")
	rootCmd.AddCommand(transcriptCmd)
}
