package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple object",
			in:   `{"a":1};var next = 2;`,
			want: `{"a":1}`,
		},
		{
			name: "nested objects",
			in:   `{"a":{"b":{"c":3}}}rest`,
			want: `{"a":{"b":{"c":3}}}`,
		},
		{
			name: "braces inside strings",
			in:   `{"title":"a } tricky { title"}suffix`,
			want: `{"title":"a } tricky { title"}`,
		},
		{
			name: "escaped quotes inside strings",
			in:   `{"title":"she said \"}\" loudly"}suffix`,
			want: `{"title":"she said \"}\" loudly"}`,
		},
		{
			name: "leading junk before object",
			in:   ` = {"a":1};`,
			want: `{"a":1}`,
		},
		{
			name: "unbalanced object",
			in:   `{"a":{"b":1}`,
			want: "",
		},
		{
			name: "no object at all",
			in:   `var x = 1;`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSONObject([]byte(tt.in))
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestFetchEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="1.5" dur="2">hello there</text>
  <text start="4" dur="2">   </text>
  <text start="6.25" dur="2">general content</text>
</transcript>`))
	}))
	defer srv.Close()

	b := NewWatchPageBackend(5*time.Second, &CaptureLogger{})
	segments, err := b.fetchEntries(context.Background(), srv.URL)

	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "00:00:01.500", segments[0].Timestamp)
	assert.Equal(t, "hello there", segments[0].Text)
	assert.Equal(t, "00:00:06.250", segments[1].Timestamp)
}

func TestFetchEntriesEmptyDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<transcript></transcript>`))
	}))
	defer srv.Close()

	b := NewWatchPageBackend(5*time.Second, &CaptureLogger{})
	_, err := b.fetchEntries(context.Background(), srv.URL)

	require.ErrorIs(t, err, ErrUnparsablePayload)
}

func TestFetchEntriesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	b := NewWatchPageBackend(5*time.Second, &CaptureLogger{})
	_, err := b.fetchEntries(context.Background(), srv.URL)

	require.Error(t, err)
}
