package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rtzll/ytscribe/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytscribe [YouTube URL or ID]",
	Short: "Extract and summarize YouTube transcripts",
	Long: `ytscribe extracts transcripts from YouTube videos via their captions.

It tries YouTube's player API through several client identities (and
optionally through proxies) until one yields captions, then parses them
into timestamped segments. A summary is generated with the configured
language model, or extractively when no model is available.`,
	Example: `  # Extract and summarize a YouTube video (default behavior)
  ytscribe "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytscribe tAP1eZYEuKA

  # Use a specific model
  ytscribe "https://youtu.be/tAP1eZYEuKA" --provider openai --model gpt-4o

  # Use custom prompt for the summary
  ytscribe tAP1eZYEuKA --prompt "tldr: {{.Transcript}}"

  # Route caption retrieval through the configured proxies
  ytscribe tAP1eZYEuKA --proxy`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleVerboseFlag(cmd, config)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate argument before processing
		arg := args[0]
		if internal.IsLikelyCommand(arg) {
			availableCommands := []string{"serve", "transcript", "summarize", "cp", "mcp", "version", "paths", "help"}
			var suggestions []string
			for _, cmdName := range availableCommands {
				if strings.Contains(cmdName, arg) || (len(arg) <= len(cmdName) && strings.Contains(arg, cmdName[:len(arg)])) {
					suggestions = append(suggestions, cmdName)
				}
			}

			if len(suggestions) > 0 {
				return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Did you mean: %s?", arg, strings.Join(suggestions, ", "))
			}
			return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Use --help to see available commands", arg)
		}

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

		if result.Title != "" {
			app.UI().Printf("# %s\n\n", result.Title)
		}
		fmt.Println(rendered)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize configuration with Viper
	config = internal.InitConfig()

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir, config.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	// Ensure default config exists in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// Ensure default prompt exists in XDG config directory
	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Set context on root command
	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddExtractionFlags(rootCmd)
	internal.AddSummaryFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/ytscribe/config.toml)")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
