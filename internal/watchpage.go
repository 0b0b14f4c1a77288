package internal

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// playerResponseMarker marks the start of the player response JSON embedded
// in watch page HTML.
const playerResponseMarker = "ytInitialPlayerResponse = "

const watchPageLimit = 6 << 20

// CaptionBackend is the secondary caption source: a lookup by video ID
// returning already-structured timed entries, independent of the innertube
// strategy machinery.
type CaptionBackend interface {
	Lookup(ctx context.Context, videoID string) ([]TranscriptSegment, string, error)
}

// WatchPageBackend scrapes the public watch page for the embedded player
// response and reads the caption track XML directly. It shares nothing with
// the primary path on purpose: when every innertube strategy is blocked,
// the plain HTML page often still works.
type WatchPageBackend struct {
	client *http.Client
	log    Logger
}

// NewWatchPageBackend creates the watch-page caption backend.
func NewWatchPageBackend(timeout time.Duration, log Logger) *WatchPageBackend {
	return &WatchPageBackend{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// watchTranscript is the timedtext XML decoded into structured entries.
type watchTranscript struct {
	Entries []struct {
		Text  string  `xml:",chardata"`
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
	} `xml:"text"`
}

// Lookup fetches the watch page, extracts the player response, selects the
// best caption track and returns its entries as transcript segments.
func (b *WatchPageBackend) Lookup(ctx context.Context, videoID string) ([]TranscriptSegment, string, error) {
	watchURL := "https://www.youtube.com/watch?v=" + videoID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("requesting watch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, watchPageLimit))
	if err != nil {
		return nil, "", fmt.Errorf("reading watch page: %w", err)
	}

	idx := strings.Index(string(body), playerResponseMarker)
	if idx < 0 {
		return nil, "", fmt.Errorf("player response not found in watch page")
	}

	jsonData := extractJSONObject(body[idx+len(playerResponseMarker):])
	if jsonData == nil {
		return nil, "", fmt.Errorf("malformed player response in watch page")
	}

	var player playerResponse
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return nil, "", fmt.Errorf("decoding player response: %w", err)
	}

	title := player.VideoDetails.Title
	if player.Captions == nil {
		return nil, title, ErrNoCaptions
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	track, ok := selectCaptionTrack(tracks, captionLanguages)
	if !ok {
		return nil, title, ErrNoCaptions
	}

	segments, err := b.fetchEntries(ctx, track.BaseURL)
	if err != nil {
		return nil, title, err
	}

	return segments, title, nil
}

// fetchEntries downloads the track's timedtext XML and decodes it into
// segments. The entries arrive structured, so no text-format dispatch is
// needed on this path.
func (b *WatchPageBackend) fetchEntries(ctx context.Context, baseURL string) ([]TranscriptSegment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Referer", youtubeReferer)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching caption track: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption track returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, subtitlePayloadLimit))
	if err != nil {
		return nil, err
	}

	var transcript watchTranscript
	if err := xml.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("decoding caption track XML: %w", err)
	}

	segments := make([]TranscriptSegment, 0, len(transcript.Entries))
	for _, entry := range transcript.Entries {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		segments = append(segments, TranscriptSegment{
			Timestamp: SecondsToTimestamp(entry.Start),
			Text:      text,
		})
	}

	if len(segments) == 0 {
		return nil, ErrUnparsablePayload
	}
	return segments, nil
}

// extractJSONObject returns the balanced JSON object starting at the first
// '{' of data, tracking strings and escapes so embedded braces don't
// truncate the result.
func extractJSONObject(data []byte) []byte {
	start := strings.IndexByte(string(data), '{')
	if start < 0 {
		return nil
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(data); i++ {
		c := data[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return data[start : i+1]
			}
		}
	}

	return nil
}
