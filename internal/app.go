package internal

import (
	"context"
	"fmt"
	"os"
)

// App holds the application state and dependencies. It is the composition
// root: the summary provider and extractor are constructed once here and
// injected everywhere they are needed.
type App struct {
	config    *Config
	extractor *Extractor
	ai        *AI
	log       Logger
	ui        UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	log := Logger(NewSlogLogger(config.Verbose))
	if config.Quiet {
		log = NopLogger{}
	}

	provider := NewProviderFromConfig(context.Background(), config, log)
	prompts := NewPromptManager(config.ConfigDir, config.Prompt)

	app := &App{
		config:    config,
		extractor: NewExtractor(config, log),
		ai:        NewAI(provider, prompts, config.SummaryTimeout, log),
		log:       log,
		ui:        NewUIManager(config.Quiet),
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithExtractor sets a custom extractor
func WithExtractor(extractor *Extractor) AppOption {
	return func(a *App) {
		a.extractor = extractor
	}
}

// WithAI sets a custom summarization collaborator
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithLogger sets a custom logger
func WithLogger(log Logger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// Config exposes the application configuration.
func (app *App) Config() *Config { return app.config }

// SetPromptManager replaces the prompt manager, e.g. when the user passes
// a custom prompt on the command line.
func (app *App) SetPromptManager(prompts *PromptManager) {
	app.ai.prompts = prompts
}

// ExtractTranscript gets the transcript for a URL, using the cache when
// enabled.
func (app *App) ExtractTranscript(ctx context.Context, youtubeURL string) (*ExtractionResult, error) {
	if app.config.CacheTranscripts {
		if videoID, err := ResolveVideoID(youtubeURL); err == nil {
			if cached, err := LoadCachedTranscript(videoID, app.config.TranscriptsDir); err == nil {
				app.log.Debugf("using cached transcript for %s", videoID)
				return cached, nil
			}
		}
	}

	result, err := app.extractor.Extract(ctx, youtubeURL, app.config.UseProxy)
	if err != nil {
		return nil, err
	}

	if app.config.CacheTranscripts {
		if err := EnsureDirs(app.config.TranscriptsDir); err == nil {
			if err := SaveTranscript(result, app.config.TranscriptsDir); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
	}

	return result, nil
}

// Summarize produces a summary for an extraction result. Never fails; the
// extractive fallback covers provider errors.
func (app *App) Summarize(ctx context.Context, result *ExtractionResult) string {
	return app.ai.Summarize(ctx, result)
}

// UI exposes the CLI output manager.
func (app *App) UI() UIManager { return app.ui }
