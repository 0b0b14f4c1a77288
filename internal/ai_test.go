package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cannedProvider returns a fixed summary or error.
type cannedProvider struct {
	summary string
	err     error
	prompts []string
}

func (p *cannedProvider) Summarize(_ context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.summary, p.err
}

func longSegments() []TranscriptSegment {
	segments := make([]TranscriptSegment, 0, 10)
	for i := 0; i < 10; i++ {
		segments = append(segments, TranscriptSegment{
			Timestamp: "00:00:01.000",
			Text:      "This sentence talks about an interesting subject in some depth.",
		})
	}
	return segments
}

func TestSummarizeUsesProvider(t *testing.T) {
	provider := &cannedProvider{summary: "**Topics:** testing"}
	prompts := NewPromptManager("", "Summarize {{.Title}}: {{.Transcript}}")
	ai := NewAI(provider, prompts, time.Minute, &CaptureLogger{})

	result := &ExtractionResult{Title: "My Video", Segments: longSegments()}
	summary := ai.Summarize(context.Background(), result)

	assert.Equal(t, "**Topics:** testing", summary)
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "My Video")
	assert.Contains(t, provider.prompts[0], "interesting subject")
}

func TestSummarizeFallsBackOnProviderError(t *testing.T) {
	provider := &cannedProvider{err: errors.New("quota exceeded")}
	prompts := NewPromptManager("", "{{.Transcript}}")
	log := &CaptureLogger{}
	ai := NewAI(provider, prompts, time.Minute, log)

	summary := ai.Summarize(context.Background(), &ExtractionResult{Segments: longSegments()})

	// The caller still gets a summary, just an extractive one.
	assert.Contains(t, summary, "**Topics:**")
	assert.Contains(t, summary, "**Takeaways:**")

	errored := false
	for _, e := range log.Entries {
		if strings.Contains(e, "falling back to extractive") {
			errored = true
		}
	}
	assert.True(t, errored, "expected fallback to be logged")
}

func TestSummarizeWithoutProvider(t *testing.T) {
	prompts := NewPromptManager("", "")
	ai := NewAI(nil, prompts, time.Minute, &CaptureLogger{})

	summary := ai.Summarize(context.Background(), &ExtractionResult{Segments: longSegments()})
	assert.Contains(t, summary, "**Topics:**")
}

func TestSummarizeShortTranscript(t *testing.T) {
	provider := &cannedProvider{summary: "should not be used"}
	ai := NewAI(provider, NewPromptManager("", ""), time.Minute, &CaptureLogger{})

	summary := ai.Summarize(context.Background(), &ExtractionResult{
		Segments: []TranscriptSegment{{Text: "too short"}},
	})

	assert.Contains(t, summary, "too short for meaningful summary")
	assert.Empty(t, provider.prompts)
}

func TestExtractiveSummary(t *testing.T) {
	var sentences []string
	for i := 0; i < 9; i++ {
		sentences = append(sentences, fmt.Sprintf("Sentence number %d carries enough weight to count", i))
	}
	text := strings.Join(sentences, ". ") + "."

	summary := ExtractiveSummary(text)

	assert.Contains(t, summary, "**Topics:**")
	assert.Contains(t, summary, "**Points:**")
	assert.Contains(t, summary, "**Takeaways:**")
	// First, middle and last sentences are represented.
	assert.Contains(t, summary, sentences[0])
	assert.Contains(t, summary, sentences[4])
	assert.Contains(t, summary, sentences[8])
	// Intermediate ones are not.
	assert.NotContains(t, summary, sentences[1])
}

func TestExtractiveSummaryShortInput(t *testing.T) {
	summary := ExtractiveSummary("tiny")
	assert.Contains(t, summary, "too short")
}

func TestNewProviderFromConfig(t *testing.T) {
	log := &CaptureLogger{}

	assert.Nil(t, NewProviderFromConfig(context.Background(), &Config{SummaryProvider: ""}, log))
	assert.Nil(t, NewProviderFromConfig(context.Background(), &Config{SummaryProvider: "openai"}, log))
	assert.Nil(t, NewProviderFromConfig(context.Background(), &Config{SummaryProvider: "gemini"}, log))
	assert.Nil(t, NewProviderFromConfig(context.Background(), &Config{SummaryProvider: "mystery"}, log))

	provider := NewProviderFromConfig(context.Background(), &Config{
		SummaryProvider: "openai",
		OpenAIAPIKey:    "sk-test",
		SummaryModel:    "gpt-4o-mini",
	}, log)
	assert.IsType(t, &OpenAIProvider{}, provider)
}
