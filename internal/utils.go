package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsLikelyCommand checks if a string looks like it might be a mistyped command
func IsLikelyCommand(arg string) bool {
	// Short strings that aren't video IDs and contain no URL markers are
	// probably commands, not references
	if len(arg) <= 10 && !IsValidVideoID(arg) && !strings.ContainsAny(arg, "/.?") {
		return true
	}
	return false
}

// CachedTranscript is the on-disk shape of an extraction result.
type CachedTranscript struct {
	VideoID  string              `json:"video_id"`
	Title    string              `json:"title"`
	Segments []TranscriptSegment `json:"segments"`
	CachedAt time.Time           `json:"cached_at"`
}

// SaveTranscript caches an extraction result in the transcripts directory.
func SaveTranscript(result *ExtractionResult, transcriptsDir string) error {
	cached := CachedTranscript{
		VideoID:  result.VideoID,
		Title:    result.Title,
		Segments: result.Segments,
		CachedAt: time.Now(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling transcript: %w", err)
	}

	transcriptPath := filepath.Join(transcriptsDir, result.VideoID+".json")
	if err := os.WriteFile(transcriptPath, data, 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}

// LoadCachedTranscript loads a previously extracted transcript.
func LoadCachedTranscript(videoID, transcriptsDir string) (*ExtractionResult, error) {
	transcriptPath := filepath.Join(transcriptsDir, videoID+".json")

	if !FileExists(transcriptPath) {
		return nil, fmt.Errorf("transcript cache not found")
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("reading transcript cache: %w", err)
	}

	var cached CachedTranscript
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("parsing transcript cache: %w", err)
	}

	return &ExtractionResult{
		VideoID:  cached.VideoID,
		Title:    cached.Title,
		Segments: cached.Segments,
	}, nil
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// RenderMarkdown renders markdown content with glamour when stdout is a
// terminal; otherwise the content passes through unchanged.
func RenderMarkdown(content string) (string, error) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return content, nil
	}

	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}
