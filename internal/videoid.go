package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// VideoReference pairs a raw URL with the 11-character video ID resolved
// from it. Immutable once constructed.
type VideoReference struct {
	RawURL  string
	VideoID string
}

// videoIDPatterns cover the known YouTube URL shapes. Tried in order, the
// first capturing match wins. There are deliberately no fallback
// heuristics: an unmatched URL is a hard failure, not a guess.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|youtu\.be/|youtube\.com/shorts/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/v/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([0-9A-Za-z_-]{11})`),
}

// ResolveVideoID extracts a YouTube video ID from any supported URL shape
// (watch?v=, youtu.be short links, /shorts/, /embed/, /v/).
func ResolveVideoID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrInvalidReference
	}

	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1], nil
		}
	}

	return "", fmt.Errorf("%q: %w", rawURL, ErrInvalidReference)
}

// ResolveReference resolves a URL into a VideoReference.
func ResolveReference(rawURL string) (VideoReference, error) {
	id, err := ResolveVideoID(rawURL)
	if err != nil {
		return VideoReference{}, err
	}
	return VideoReference{RawURL: rawURL, VideoID: id}, nil
}

// IsValidVideoID checks if a string looks like a bare YouTube video ID.
func IsValidVideoID(id string) bool {
	if len(id) != 11 {
		return false
	}
	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, id)
	return matched
}

// ParseArg normalizes a CLI argument that is either a URL or a bare video ID
// into a watch URL.
func ParseArg(arg string) string {
	arg = strings.TrimSpace(arg)
	if strings.HasPrefix(arg, "https://") || strings.HasPrefix(arg, "http://") {
		return arg
	}
	return "https://www.youtube.com/watch?v=" + arg
}
