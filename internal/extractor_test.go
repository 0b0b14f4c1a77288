package internal

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWatchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

const fetcherVTT = "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nhello from the fetcher\n"

// scriptedFetcher returns canned results per call, in order, and records
// which strategies were attempted.
type scriptedFetcher struct {
	results []fetchResult
	calls   []Strategy
}

type fetchResult struct {
	payload string
	title   string
	err     error
}

func (f *scriptedFetcher) FetchCaptions(_ context.Context, strategy Strategy, _ string) (string, string, error) {
	f.calls = append(f.calls, strategy)
	if len(f.results) == 0 {
		return "", "", fmt.Errorf("unexpected call %d", len(f.calls))
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.payload, r.title, r.err
}

// staticBackend is a canned secondary caption source.
type staticBackend struct {
	segments []TranscriptSegment
	title    string
	err      error
	calls    int
}

func (b *staticBackend) Lookup(context.Context, string) ([]TranscriptSegment, string, error) {
	b.calls++
	return b.segments, b.title, b.err
}

func newTestExtractor(fetcher CaptionFetcher, backend CaptionBackend) (*Extractor, *CaptureLogger) {
	log := &CaptureLogger{}
	config := &Config{}
	e := NewExtractor(config, log,
		WithFetcher(fetcher),
		WithSecondaryBackend(backend),
		WithProber(&fakeProber{}),
	)
	return e, log
}

func TestExtractFirstSuccessShortCircuits(t *testing.T) {
	fetcher := &scriptedFetcher{results: []fetchResult{
		{err: errors.New("blocked"), title: "Some Video"},
		{payload: fetcherVTT, title: "Some Video"},
	}}
	backend := &staticBackend{err: ErrNoCaptions}

	e, _ := newTestExtractor(fetcher, backend)
	result, err := e.Extract(context.Background(), testWatchURL, false)

	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", result.VideoID)
	assert.Equal(t, "Some Video", result.Title)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, "hello from the fetcher", result.Segments[0].Text)

	// Success on the second strategy stops the loop there.
	assert.Len(t, fetcher.calls, 2)
	assert.Equal(t, 0, backend.calls)
}

func TestExtractFallsBackToSecondary(t *testing.T) {
	fetcher := &scriptedFetcher{results: []fetchResult{
		{err: ErrNoCaptions, title: "Stubborn Video"},
		{err: ErrNoCaptions},
		{err: ErrNoCaptions},
		{err: ErrNoCaptions},
	}}
	backend := &staticBackend{
		segments: []TranscriptSegment{{Timestamp: "00:00:01.000", Text: "from the watch page"}},
		title:    "Stubborn Video",
	}

	e, _ := newTestExtractor(fetcher, backend)
	result, err := e.Extract(context.Background(), testWatchURL, false)

	require.NoError(t, err)
	assert.Len(t, fetcher.calls, 4)
	assert.Equal(t, 1, backend.calls)
	assert.Equal(t, "Stubborn Video", result.Title)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, "from the watch page", result.Segments[0].Text)
}

func TestExtractExhaustionCarriesBestTitle(t *testing.T) {
	fetcher := &scriptedFetcher{results: []fetchResult{
		{err: ErrNoCaptions},
		{err: ErrNoCaptions, title: "Known Title"},
		{err: ErrNoCaptions},
		{err: ErrNoCaptions},
	}}
	backend := &staticBackend{err: ErrNoCaptions}

	e, _ := newTestExtractor(fetcher, backend)
	result, err := e.Extract(context.Background(), testWatchURL, false)

	require.Nil(t, result)
	require.Error(t, err)

	var noTranscript *NoTranscriptError
	require.ErrorAs(t, err, &noTranscript)
	assert.Equal(t, "Known Title", noTranscript.Title)
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestExtractEmptyPayloadTriesNextStrategy(t *testing.T) {
	fetcher := &scriptedFetcher{results: []fetchResult{
		{payload: "no recognizable format here", title: "A Video"},
		{payload: fetcherVTT, title: "A Video"},
	}}
	backend := &staticBackend{err: ErrNoCaptions}

	e, _ := newTestExtractor(fetcher, backend)
	result, err := e.Extract(context.Background(), testWatchURL, false)

	require.NoError(t, err)
	assert.Len(t, fetcher.calls, 2)
	assert.Equal(t, "A Video", result.Title)
}

func TestExtractInvalidURL(t *testing.T) {
	fetcher := &scriptedFetcher{}
	backend := &staticBackend{}

	e, _ := newTestExtractor(fetcher, backend)
	_, err := e.Extract(context.Background(), "https://example.com/nothing", false)

	require.ErrorIs(t, err, ErrInvalidReference)
	assert.Empty(t, fetcher.calls)
	assert.Equal(t, 0, backend.calls)
}

func TestExtractCancelledContext(t *testing.T) {
	fetcher := &scriptedFetcher{}
	backend := &staticBackend{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, _ := newTestExtractor(fetcher, backend)
	_, err := e.Extract(ctx, testWatchURL, false)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.calls)
}
