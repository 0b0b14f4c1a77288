package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// segmentCap bounds the transcript size returned over HTTP. The core
// returns everything it parsed; truncation is a transport concern.
const segmentCap = 500

// ExtractRequest is the inbound payload of POST /extract.
type ExtractRequest struct {
	YouTubeURL      string `json:"youtube_url"`
	GenerateSummary *bool  `json:"generate_summary"`
}

// DisplaySegment is a transcript segment with a short MM:SS timestamp for
// presentation.
type DisplaySegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// ExtractResponse is the outbound payload of POST /extract.
type ExtractResponse struct {
	Success       bool             `json:"success"`
	VideoID       string           `json:"video_id,omitempty"`
	VideoTitle    string           `json:"video_title,omitempty"`
	Transcript    []DisplaySegment `json:"transcript,omitempty"`
	Summary       string           `json:"summary,omitempty"`
	TotalSegments int              `json:"total_segments,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// NewServer builds the HTTP transport around the application core.
func NewServer(app *App) *fiber.App {
	srv := fiber.New(fiber.Config{
		AppName:               "ytscribe",
		DisableStartupMessage: app.Config().Quiet,
	})

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	srv.Post("/extract", func(c *fiber.Ctx) error {
		var req ExtractRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		req.YouTubeURL = strings.TrimSpace(req.YouTubeURL)
		if req.YouTubeURL == "" {
			return badRequest(c, "Please provide a YouTube URL")
		}

		result, err := app.ExtractTranscript(c.Context(), req.YouTubeURL)
		if err != nil {
			return extractError(c, err)
		}

		generateSummary := req.GenerateSummary == nil || *req.GenerateSummary

		summary := ""
		if generateSummary && len(result.Segments) > 0 {
			summary = app.Summarize(c.Context(), result)
		}

		segments := result.Segments
		if len(segments) > segmentCap {
			segments = segments[:segmentCap]
		}

		transcript := make([]DisplaySegment, 0, len(segments))
		for _, seg := range segments {
			transcript = append(transcript, DisplaySegment{
				Timestamp: DisplayTimestamp(seg.Timestamp),
				Text:      seg.Text,
			})
		}

		title := result.Title
		if title == "" {
			title = "Unknown Title"
		}

		return c.JSON(ExtractResponse{
			Success:       true,
			VideoID:       result.VideoID,
			VideoTitle:    title,
			Transcript:    transcript,
			Summary:       summary,
			TotalSegments: len(transcript),
		})
	})

	return srv
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ExtractResponse{
		Success: false,
		Error:   message,
	})
}

// extractError maps pipeline failures onto user-facing messages.
func extractError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrInvalidReference) {
		return badRequest(c, "Could not extract a video ID from this URL")
	}

	var noTranscript *NoTranscriptError
	if errors.As(err, &noTranscript) {
		msg := "Could not extract transcript from this video."
		if noTranscript.Title != "" {
			msg += fmt.Sprintf(" Video %q may not have captions available or may be restricted.", noTranscript.Title)
		} else {
			msg += " The video may not have captions available, be private, or be restricted in your region."
		}
		return badRequest(c, msg)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ExtractResponse{
		Success: false,
		Error:   "Internal error while extracting transcript",
	})
}
