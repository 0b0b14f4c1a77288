package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytscribe/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [URL]",
	Short: "Copy transcript from YouTube to the clipboard",
	Example: `  # Copy transcript from YouTube captions
  ytscribe cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytscribe cp tAP1eZYEuKA`,
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

		if err := clipboard.WriteAll(formatTranscript(result)); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Transcript copied to clipboard")
		}

		return nil
	},
}

func init() {
	internal.AddExtractionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
