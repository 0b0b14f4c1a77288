package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"google.golang.org/genai"
)

// summaryInputLimit caps how much transcript text is sent to a provider.
const summaryInputLimit = 8000

// summarySegmentLimit caps how many segments feed the summary text.
const summarySegmentLimit = 100

// SummaryProvider generates a summary for a prepared prompt.
type SummaryProvider interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// OpenAIProvider wraps the official OpenAI Go SDK.
type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates an OpenAI-backed summary provider.
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (p *OpenAIProvider) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// GeminiProvider wraps the Google genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed summary provider.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Summarize(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

// AI turns transcripts into summaries. A provider failure is never surfaced
// to the caller: the extractive fallback always produces some summary.
type AI struct {
	provider SummaryProvider
	prompts  *PromptManager
	timeout  time.Duration
	log      Logger
}

// NewAI creates the summarization collaborator. provider may be nil, in
// which case every summary is extractive.
func NewAI(provider SummaryProvider, prompts *PromptManager, timeout time.Duration, log Logger) *AI {
	return &AI{
		provider: provider,
		prompts:  prompts,
		timeout:  timeout,
		log:      log,
	}
}

// NewProviderFromConfig constructs the configured summary provider. An
// unset provider or missing API key yields nil, meaning extractive-only.
func NewProviderFromConfig(ctx context.Context, config *Config, log Logger) SummaryProvider {
	switch config.SummaryProvider {
	case "openai":
		if config.OpenAIAPIKey == "" {
			log.Warnf("summary_provider is openai but OPENAI_API_KEY is not set, using extractive summaries")
			return nil
		}
		return NewOpenAIProvider(config.OpenAIAPIKey, config.SummaryModel)
	case "gemini":
		if config.GeminiAPIKey == "" {
			log.Warnf("summary_provider is gemini but GEMINI_API_KEY is not set, using extractive summaries")
			return nil
		}
		provider, err := NewGeminiProvider(ctx, config.GeminiAPIKey, config.SummaryModel)
		if err != nil {
			log.Errorf("initializing Gemini provider: %v", err)
			return nil
		}
		return provider
	case "":
		return nil
	default:
		log.Warnf("unknown summary provider %q, using extractive summaries", config.SummaryProvider)
		return nil
	}
}

// Summarize produces a summary for the transcript segments. It always
// returns a summary string; provider errors fall back to the extractive
// summary.
func (ai *AI) Summarize(ctx context.Context, result *ExtractionResult) string {
	text := JoinSegmentText(result.Segments, summarySegmentLimit)
	if len(strings.TrimSpace(text)) < 50 {
		return "**Summary:** Transcript too short for meaningful summary."
	}

	if ai.provider == nil {
		return ExtractiveSummary(text)
	}

	if len(text) > summaryInputLimit {
		text = text[:summaryInputLimit]
	}

	prompt, err := ai.prompts.CreatePrompt(text, result.Title)
	if err != nil {
		ai.log.Errorf("building summary prompt: %v", err)
		return ExtractiveSummary(text)
	}

	ctx, cancel := context.WithTimeout(ctx, ai.timeout)
	defer cancel()

	summary, err := ai.provider.Summarize(ctx, prompt)
	if err != nil || strings.TrimSpace(summary) == "" {
		ai.log.Errorf("summary provider failed, falling back to extractive: %v", err)
		return ExtractiveSummary(text)
	}

	return summary
}

// ExtractiveSummary builds a deterministic summary from representative
// sentences: the first, middle and last meaningful ones.
func ExtractiveSummary(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < 50 {
		return "**Summary:** Transcript too short for meaningful summary."
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) > 20 {
		sentences = sentences[:20]
	}

	var meaningful []string
	for _, s := range sentences {
		if s = strings.TrimSpace(s); len(s) > 20 {
			meaningful = append(meaningful, s)
		}
	}

	var picked []string
	if len(meaningful) <= 3 {
		picked = meaningful
	} else {
		picked = []string{
			meaningful[0],
			meaningful[len(meaningful)/2],
			meaningful[len(meaningful)-1],
		}
	}

	summary := strings.Join(picked, ". ")
	if summary != "" && !strings.HasSuffix(summary, ".") {
		summary += "."
	}

	return fmt.Sprintf(`**Topics:** Video content analysis
**Points:** %s
**Takeaways:** Review full transcript for detailed insights`, summary)
}
