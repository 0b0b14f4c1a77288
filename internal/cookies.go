package internal

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// LoadNetscapeCookies reads a Netscape-format cookies file (the shape
// browser exporters and yt-dlp produce) and returns the cookies scoped to
// youtube.com. A missing file is not an error worth surfacing; callers get
// an empty slice and move on.
func LoadNetscapeCookies(path string) ([]*http.Cookie, error) {
	if path == "" {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening cookies file: %w", err)
	}
	defer file.Close()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// domain, include-subdomains, path, secure, expiry, name, value
		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			continue
		}
		if !strings.Contains(fields[0], "youtube.com") {
			continue
		}

		cookies = append(cookies, &http.Cookie{
			Name:  fields[5],
			Value: fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cookies file: %w", err)
	}

	return cookies, nil
}
