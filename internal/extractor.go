package internal

import (
	"context"
	"errors"
)

// Extractor drives the full transcript acquisition pipeline: resolve the
// video ID, enumerate retrieval strategies, fetch and parse per strategy
// with a first-success short-circuit, then fall back to the secondary
// caption backend. Strategies run sequentially, never in parallel, to keep
// upstream request volume low.
type Extractor struct {
	config    *Config
	fetcher   CaptionFetcher
	secondary CaptionBackend
	prober    ProxyProber
	log       Logger
}

// NewExtractor wires the default pipeline from config.
func NewExtractor(config *Config, log Logger, options ...ExtractorOption) *Extractor {
	e := &Extractor{
		config:    config,
		fetcher:   NewInnertubeFetcher(config, log),
		secondary: NewWatchPageBackend(config.DirectTimeout, log),
		prober:    NewProxyProber(config.ProbeTimeout),
		log:       log,
	}

	for _, option := range options {
		option(e)
	}

	return e
}

// ExtractorOption customizes Extractor creation.
type ExtractorOption func(*Extractor)

// WithFetcher sets a custom caption fetcher.
func WithFetcher(fetcher CaptionFetcher) ExtractorOption {
	return func(e *Extractor) {
		e.fetcher = fetcher
	}
}

// WithSecondaryBackend sets a custom secondary caption backend.
func WithSecondaryBackend(backend CaptionBackend) ExtractorOption {
	return func(e *Extractor) {
		e.secondary = backend
	}
}

// WithProber sets a custom proxy prober.
func WithProber(prober ProxyProber) ExtractorOption {
	return func(e *Extractor) {
		e.prober = prober
	}
}

// Extract acquires the transcript for a video URL. Every per-strategy
// failure is logged and converted into trying the next strategy; only an
// unresolvable URL or total exhaustion surface as errors. On exhaustion the
// returned error is a *NoTranscriptError carrying the best title seen.
func (e *Extractor) Extract(ctx context.Context, rawURL string, useProxy bool) (*ExtractionResult, error) {
	ref, err := ResolveReference(rawURL)
	if err != nil {
		return nil, err
	}

	e.log.Infof("extracting transcript for %s", ref.VideoID)

	strategies := EnumerateStrategies(ctx, useProxy, e.config.Proxies, e.prober, e.log)

	var bestTitle string
	for _, strategy := range strategies {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		payload, title, err := e.fetcher.FetchCaptions(ctx, strategy, ref.VideoID)
		if title != "" {
			bestTitle = title
		}
		if err != nil {
			e.log.Warnf("strategy %s failed: %v", strategy, err)
			continue
		}

		segments := ParseSubtitles(payload, e.log)
		if len(segments) == 0 {
			e.log.Warnf("strategy %s: payload yielded no segments", strategy)
			continue
		}

		e.log.Infof("strategy %s succeeded with %d segments", strategy, len(segments))
		return &ExtractionResult{
			VideoID:  ref.VideoID,
			Title:    bestTitle,
			Segments: segments,
		}, nil
	}

	e.log.Infof("all strategies exhausted for %s, trying watch page", ref.VideoID)

	segments, title, err := e.secondary.Lookup(ctx, ref.VideoID)
	if title != "" {
		bestTitle = title
	}
	if err == nil && len(segments) > 0 {
		e.log.Infof("watch page succeeded with %d segments", len(segments))
		return &ExtractionResult{
			VideoID:  ref.VideoID,
			Title:    bestTitle,
			Segments: segments,
		}, nil
	}
	if err != nil && !errors.Is(err, ErrNoCaptions) && !errors.Is(err, ErrUnparsablePayload) {
		e.log.Warnf("watch page lookup failed: %v", err)
	}

	return nil, &NoTranscriptError{Title: bestTitle}
}
