package internal

import (
	"strings"
	"testing"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:04.000
Hello and <c.colorE5E5E5>welcome</c> to the show

00:00:04.500 --> 00:00:07.000 align:start position:0%
Today we talk about
transcripts

00:00:08.000 --> 00:00:10.000
<i></i>
`

func TestParseSubtitlesVTT(t *testing.T) {
	log := &CaptureLogger{}
	segments := ParseSubtitles(sampleVTT, log)

	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
	}

	if segments[0].Timestamp != "00:00:01.000" {
		t.Errorf("first timestamp = %q", segments[0].Timestamp)
	}
	if segments[0].Text != "Hello and welcome to the show" {
		t.Errorf("markup not stripped: %q", segments[0].Text)
	}
	if segments[1].Text != "Today we talk about transcripts" {
		t.Errorf("multi-line cue not joined: %q", segments[1].Text)
	}
}

func TestParseSubtitlesVTTMalformedCue(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 -->\nbroken cue\n\n00:00:02.000 --> 00:00:03.000\ngood cue\n"
	log := &CaptureLogger{}

	segments := ParseSubtitles(content, log)
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	if segments[0].Text != "good cue" {
		t.Errorf("text = %q", segments[0].Text)
	}

	warned := false
	for _, e := range log.Entries {
		if strings.Contains(e, "malformed") {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning for the malformed cue")
	}
}

const sampleTimedText = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="1.5" dur="2.5">First line</text>
  <text start="bogus" dur="2">skipped</text>
  <text start="4.0" dur="3.0">  </text>
  <text start="3725.25" dur="2">Last line</text>
</transcript>`

func TestParseSubtitlesTimedText(t *testing.T) {
	log := &CaptureLogger{}
	segments := ParseSubtitles(sampleTimedText, log)

	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
	}
	if segments[0].Timestamp != "00:00:01.500" {
		t.Errorf("first timestamp = %q", segments[0].Timestamp)
	}
	if segments[0].Text != "First line" {
		t.Errorf("first text = %q", segments[0].Text)
	}
	// One bad start attribute skips that element only, not the document.
	if segments[1].Timestamp != "01:02:05.250" {
		t.Errorf("last timestamp = %q", segments[1].Timestamp)
	}
}

func TestParseSubtitlesUnknownFormat(t *testing.T) {
	log := &CaptureLogger{}
	if segments := ParseSubtitles("just some prose with no timing at all", log); segments != nil {
		t.Errorf("got %+v, want nil", segments)
	}
	if len(log.Entries) == 0 {
		t.Error("expected a warning for unknown format")
	}
}

func TestParseSubtitlesEmpty(t *testing.T) {
	log := &CaptureLogger{}
	if segments := ParseSubtitles("", log); segments != nil {
		t.Errorf("got %+v, want nil", segments)
	}
}

func TestSecondsToTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00.000"},
		{1.5, "00:00:01.500"},
		{59.999, "00:00:59.999"},
		{61, "00:01:01.000"},
		{3725.25, "01:02:05.250"},
	}

	for _, tt := range tests {
		if got := SecondsToTimestamp(tt.seconds); got != tt.want {
			t.Errorf("SecondsToTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDisplayTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00:01.500", "00:01"},
		{"00:12:34.000", "12:34"},
		{"01:02:05.250", "02:05"},
		{"garbage", "00:00"},
		{"aa:bb", "00:00"},
	}

	for _, tt := range tests {
		if got := DisplayTimestamp(tt.in); got != tt.want {
			t.Errorf("DisplayTimestamp(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinSegmentText(t *testing.T) {
	segments := []TranscriptSegment{
		{Text: "one"},
		{Text: "two"},
		{Text: "three"},
	}

	if got := JoinSegmentText(segments, 0); got != "one two three" {
		t.Errorf("no cap: %q", got)
	}
	if got := JoinSegmentText(segments, 2); got != "one two" {
		t.Errorf("capped: %q", got)
	}
	if got := JoinSegmentText(segments, 10); got != "one two three" {
		t.Errorf("cap beyond length: %q", got)
	}
}

func TestFormatParagraphs(t *testing.T) {
	text := "First sentence here. Second sentence here. Third sentence here"
	paragraphs := FormatParagraphs(text, 45)

	if len(paragraphs) < 2 {
		t.Fatalf("got %d paragraphs, want at least 2: %+v", len(paragraphs), paragraphs)
	}
	for _, p := range paragraphs {
		if len(p) > 45+1 {
			t.Errorf("paragraph exceeds limit: %q (%d chars)", p, len(p))
		}
	}

	joined := strings.Join(paragraphs, " ")
	if !strings.Contains(joined, "First sentence here.") || !strings.Contains(joined, "Third sentence here") {
		t.Errorf("content lost: %q", joined)
	}

	if got := FormatParagraphs("   ", 100); got != nil {
		t.Errorf("blank input: got %+v, want nil", got)
	}
}
