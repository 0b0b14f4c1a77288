package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rtzll/ytscribe/internal"
)

// extractWithSpinner retrieves a transcript for the given argument with a
// progress spinner on the CLI surface.
func extractWithSpinner(ctx context.Context, app *internal.App, arg string) (*internal.ExtractionResult, error) {
	youtubeURL := internal.ParseArg(arg)

	spinner := app.UI().NewSpinner("Extracting transcript...")
	result, err := app.ExtractTranscript(ctx, youtubeURL)
	spinner.Finish()

	return result, err
}

// formatTranscript renders segments as "[MM:SS] text" lines.
func formatTranscript(result *internal.ExtractionResult) string {
	var buf strings.Builder
	for _, seg := range result.Segments {
		buf.WriteString(fmt.Sprintf("[%s] %s\n", internal.DisplayTimestamp(seg.Timestamp), seg.Text))
	}
	return buf.String()
}
