package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddExtractionFlags adds flags related to transcript retrieval
func AddExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("proxy", false, "Route caption retrieval through the configured proxies")
	cmd.Flags().Bool("no-cache", false, "Skip the transcript cache")
}

// AddSummaryFlags adds flags related to summary generation
func AddSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Model to use for summaries")
	cmd.Flags().String("provider", "", "Summary provider (openai, gemini or none)")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
}

// HandleExtractionFlags applies retrieval flags to the config before the
// app is constructed.
func HandleExtractionFlags(cmd *cobra.Command, config *Config) error {
	if flag := cmd.Flags().Lookup("proxy"); flag != nil && flag.Changed {
		useProxy, err := cmd.Flags().GetBool("proxy")
		if err != nil {
			return fmt.Errorf("failed to get proxy flag: %w", err)
		}
		if useProxy && len(config.Proxies) == 0 {
			return fmt.Errorf("--proxy requires proxies in the config or YTSCRIBE_PROXIES")
		}
		config.UseProxy = useProxy
	}

	if flag := cmd.Flags().Lookup("no-cache"); flag != nil && flag.Changed {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		config.CacheTranscripts = !noCache
	}

	return nil
}

// HandleSummaryFlags applies provider and model overrides to the config
// before the app is constructed.
func HandleSummaryFlags(cmd *cobra.Command, config *Config) error {
	if flag := cmd.Flags().Lookup("provider"); flag != nil && flag.Changed {
		provider, err := cmd.Flags().GetString("provider")
		if err != nil {
			return fmt.Errorf("failed to get provider flag: %w", err)
		}
		switch provider {
		case "openai", "gemini":
			config.SummaryProvider = provider
		case "none":
			config.SummaryProvider = ""
		default:
			return fmt.Errorf("unknown provider %q (expected openai, gemini or none)", provider)
		}
	}

	if flag := cmd.Flags().Lookup("model"); flag != nil && flag.Changed {
		model, err := cmd.Flags().GetString("model")
		if err != nil {
			return fmt.Errorf("failed to get model flag: %w", err)
		}
		if model != "" {
			config.SummaryModel = model
		}
	}

	return nil
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if app.config.Verbose {
		if IsLikelyFilePath(prompt) && FileExists(prompt) {
			fmt.Printf("Using custom prompt file: %s\n", prompt)
		} else {
			fmt.Printf("Using custom prompt string\n")
		}
	}

	return nil
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}
