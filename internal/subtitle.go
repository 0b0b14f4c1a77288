package internal

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TranscriptSegment is one timed piece of spoken text. Timestamp keeps the
// HH:MM:SS.mmm shape of the source track; Text is non-empty after trimming.
type TranscriptSegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// ExtractionResult is what one extraction call produces. Either field may be
// absent independently: a video can yield a title without captions.
type ExtractionResult struct {
	VideoID  string
	Title    string
	Segments []TranscriptSegment
}

// markupTagRe matches formatting tags found in VTT cue text (<c>, <i>,
// <00:00:01.000>, ...).
var markupTagRe = regexp.MustCompile(`<[^>]+>`)

// ParseSubtitles converts a raw subtitle payload into ordered transcript
// segments. Payloads carrying the WebVTT signature or a "-->" range marker
// are parsed as WebVTT; payloads carrying <text ... start= elements are
// parsed as timed-text XML. An unknown format yields an empty slice, not an
// error: the caller simply tries the next track or source.
func ParseSubtitles(content string, log Logger) []TranscriptSegment {
	var segments []TranscriptSegment

	switch {
	case strings.Contains(content, "WEBVTT") || strings.Contains(content, "-->"):
		segments = parseVTT(content, log)
	case strings.Contains(content, "<text") && strings.Contains(content, "start="):
		segments = parseTimedText(content, log)
	default:
		log.Warnf("unknown subtitle format, skipping payload")
		return nil
	}

	// Segments that are empty after trimming carry no information.
	cleaned := make([]TranscriptSegment, 0, len(segments))
	for _, seg := range segments {
		if strings.TrimSpace(seg.Text) != "" {
			cleaned = append(cleaned, seg)
		}
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// parseVTT scans WebVTT content line by line. A line containing "-->"
// starts a cue; the following non-blank lines are its text.
func parseVTT(content string, log Logger) []TranscriptSegment {
	var segments []TranscriptSegment
	lines := strings.Split(content, "\n")

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if strings.Contains(line, "-->") {
			start, ok := parseCueTiming(line)
			if !ok {
				log.Warnf("skipping malformed VTT cue timing: %q", line)
				i++
				continue
			}

			var textLines []string
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
				text := markupTagRe.ReplaceAllString(strings.TrimSpace(lines[i]), "")
				if text != "" {
					textLines = append(textLines, text)
				}
				i++
			}

			if len(textLines) > 0 {
				segments = append(segments, TranscriptSegment{
					Timestamp: start,
					Text:      strings.Join(textLines, " "),
				})
			}
		}

		i++
	}

	return segments
}

// parseCueTiming splits a VTT timing line into its start timestamp. The end
// token is truncated at the first whitespace to drop cue settings; a line
// without both sides is malformed.
func parseCueTiming(line string) (string, bool) {
	parts := strings.SplitN(line, "-->", 2)
	if len(parts) != 2 {
		return "", false
	}
	start := strings.TrimSpace(parts[0])
	end := strings.Fields(strings.TrimSpace(parts[1]))
	if start == "" || len(end) == 0 {
		return "", false
	}
	return start, true
}

// timedText mirrors the YouTube srv XML shape: a flat list of <text>
// elements with a start offset in seconds. The start attribute is kept as a
// string so one non-numeric value skips a single element instead of failing
// the whole document decode.
type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText decodes timed-text XML into segments. A document that does
// not parse at all yields nil so the caller can try another track.
func parseTimedText(content string, log Logger) []TranscriptSegment {
	var tt timedText
	if err := xml.Unmarshal([]byte(content), &tt); err != nil {
		log.Warnf("parsing timed-text XML: %v", err)
		return nil
	}

	segments := make([]TranscriptSegment, 0, len(tt.Texts))
	for _, elem := range tt.Texts {
		start, err := strconv.ParseFloat(elem.Start, 64)
		if err != nil {
			continue
		}
		text := strings.TrimSpace(elem.Text)
		if text == "" {
			continue
		}
		segments = append(segments, TranscriptSegment{
			Timestamp: SecondsToTimestamp(start),
			Text:      text,
		})
	}

	return segments
}

// SecondsToTimestamp converts a seconds offset to HH:MM:SS.mmm.
func SecondsToTimestamp(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}

// DisplayTimestamp shortens an HH:MM:SS.mmm timestamp to MM:SS for
// presentation. Unparsable input falls back to 00:00.
func DisplayTimestamp(timestamp string) string {
	parts := strings.Split(timestamp, ":")
	if len(parts) < 2 {
		return "00:00"
	}
	minutes, err := strconv.ParseFloat(parts[len(parts)-2], 64)
	if err != nil {
		return "00:00"
	}
	seconds, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", int(minutes), int(seconds))
}

// JoinSegmentText concatenates segment texts with single spaces, capped at
// the first limit segments (0 means no cap).
func JoinSegmentText(segments []TranscriptSegment, limit int) string {
	if limit <= 0 || limit > len(segments) {
		limit = len(segments)
	}
	parts := make([]string, 0, limit)
	for _, seg := range segments[:limit] {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

// FormatParagraphs chunks plain text into paragraphs of at most maxLength
// characters, splitting on sentence boundaries.
func FormatParagraphs(text string, maxLength int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if maxLength <= 0 {
		maxLength = 500
	}

	sentences := strings.Split(text, ". ")
	var paragraphs []string
	var current string

	for i, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !strings.HasSuffix(sentence, ".") && i != len(sentences)-1 {
			sentence += "."
		}

		if current != "" && len(current)+len(sentence)+1 > maxLength {
			paragraphs = append(paragraphs, current)
			current = sentence
		} else if current != "" {
			current += " " + sentence
		} else {
			current = sentence
		}
	}

	if current != "" {
		paragraphs = append(paragraphs, current)
	}

	return paragraphs
}
