package internal

import (
	"errors"
	"testing"
)

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "standard watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with extra params",
			url:  "https://www.youtube.com/watch?list=PL123&v=dQw4w9WgXcQ&t=42s",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short link",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short link with timestamp",
			url:  "https://youtu.be/dQw4w9WgXcQ?t=30",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "shorts URL",
			url:  "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "embed URL",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "legacy /v/ URL",
			url:  "https://www.youtube.com/v/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "ID with hyphen and underscore",
			url:  "https://www.youtube.com/watch?v=a-b_c1D2e3F",
			want: "a-b_c1D2e3F",
		},
		{
			name:    "empty string",
			url:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			url:     "   ",
			wantErr: true,
		},
		{
			name:    "unrelated URL",
			url:     "https://example.com/watch?v=short",
			wantErr: true,
		},
		{
			name:    "channel URL",
			url:     "https://www.youtube.com/@somechannel",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVideoID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveVideoID(%q) = %q, want error", tt.url, got)
				}
				if !errors.Is(err, ErrInvalidReference) {
					t.Errorf("ResolveVideoID(%q) error = %v, want ErrInvalidReference", tt.url, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveVideoID(%q) unexpected error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ResolveVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestResolveReference(t *testing.T) {
	ref, err := ResolveReference("https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q, want dQw4w9WgXcQ", ref.VideoID)
	}
	if ref.RawURL != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("RawURL = %q", ref.RawURL)
	}

	if _, err := ResolveReference("not a url"); err == nil {
		t.Error("expected error for unresolvable input")
	}
}

func TestIsValidVideoID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"dQw4w9WgXcQ", true},
		{"a-b_c1D2e3F", true},
		{"tooshort", false},
		{"waytoolongforanid", false},
		{"dQw4w9WgXc!", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidVideoID(tt.id); got != tt.want {
			t.Errorf("IsValidVideoID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "https://youtu.be/dQw4w9WgXcQ"},
		{"http://youtube.com/watch?v=dQw4w9WgXcQ", "http://youtube.com/watch?v=dQw4w9WgXcQ"},
		{"  dQw4w9WgXcQ  ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		if got := ParseArg(tt.arg); got != tt.want {
			t.Errorf("ParseArg(%q) = %q, want %q", tt.arg, got, tt.want)
		}
	}
}
