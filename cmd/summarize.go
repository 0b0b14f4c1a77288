package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytscribe/internal"
)

// summarizeCmd represents the summarize command
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL or ID]",
	Short: "Generate summary from YouTube video",
	Example: `  # Generate summary from YouTube video
  ytscribe summarize "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytscribe summarize tAP1eZYEuKA

  # Use specific model
  ytscribe summarize tAP1eZYEuKA --provider openai --model gpt-4o

  # Use custom prompt
  ytscribe summarize tAP1eZYEuKA --prompt "tldr: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleExtractionFlags(cmd, config); err != nil {
			return err
		}
		if err := internal.HandleSummaryFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)

		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		result, err := extractWithSpinner(cmd.Context(), app, args[0])
		if err != nil {
			return err
		}

		summary := app.Summarize(cmd.Context(), result)
		rendered, err := internal.RenderMarkdown(summary)
		if err != nil {
			rendered = summary
		}

		fmt.Println(rendered)
		return nil
	},
}

func init() {
	internal.AddExtractionFlags(summarizeCmd)
	internal.AddSummaryFlags(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
