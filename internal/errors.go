package internal

import (
	"errors"
	"fmt"
)

// Error taxonomy for the extraction pipeline. Everything below the
// orchestrator is converted into "try the next strategy"; only
// ErrInvalidReference and total exhaustion reach the caller.
var (
	// ErrInvalidReference means the URL contains no recognizable video ID.
	// Terminal, never retried.
	ErrInvalidReference = errors.New("no video ID found in URL")

	// ErrNoCaptions means metadata was fetched but no caption track matched
	// the language priority list. Non-fatal at the strategy level.
	ErrNoCaptions = errors.New("no caption tracks available")

	// ErrUnparsablePayload means a subtitle payload was downloaded but
	// matched neither known format or parsed to zero usable segments.
	// Control flow treats it exactly like ErrNoCaptions.
	ErrUnparsablePayload = errors.New("subtitle payload not parsable")

	// ErrNoTranscript means every strategy and the secondary backend were
	// exhausted without a usable transcript.
	ErrNoTranscript = errors.New("no transcript found")
)

// NoTranscriptError is returned when the whole orchestration is exhausted.
// It carries the best title discovered across all attempts (possibly empty),
// so the transport layer can still tell the user which video failed.
type NoTranscriptError struct {
	Title string
}

func (e *NoTranscriptError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("no transcript found for %q", e.Title)
	}
	return "no transcript found"
}

// Is makes errors.Is(err, ErrNoTranscript) match.
func (e *NoTranscriptError) Is(target error) bool {
	return target == ErrNoTranscript
}
