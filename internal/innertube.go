package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	// browserUserAgent and youtubeReferer simulate a regular browser on
	// every call; requests without them get blocked far more often.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	youtubeReferer   = "https://www.youtube.com/"

	subtitlePayloadLimit = 2 << 20
	playerResponseLimit  = 8 << 20
)

// captionLanguages is the caption language precedence. Manual tracks in
// this order win over automatic ones in the same order.
var captionLanguages = []string{"en", "en-US", "en-GB", "en-CA", "en-AU"}

// captionFormats is the subtitle serialization preference.
var captionFormats = []string{"vtt", "srv3", "srv2", "srv1"}

// clientProfile describes how one simulated client identifies itself to the
// innertube API.
type clientProfile struct {
	name       string
	version    string
	nameID     string
	userAgent  string
	sdkVersion int
}

var clientProfiles = map[ClientIdentity]clientProfile{
	ClientWeb: {
		name:      "WEB",
		version:   "2.20240726.00.00",
		nameID:    "1",
		userAgent: browserUserAgent,
	},
	ClientAndroid: {
		name:       "ANDROID",
		version:    "19.09.37",
		nameID:     "3",
		userAgent:  "com.google.android.youtube/19.09.37 (Linux; U; Android 11) gzip",
		sdkVersion: 30,
	},
	ClientIOS: {
		name:      "IOS",
		version:   "19.09.3",
		nameID:    "5",
		userAgent: "com.google.ios.youtube/19.09.3 (iPhone14,3; U; CPU iOS 15_6 like Mac OS X)",
	},
	ClientTV: {
		name:      "TVHTML5",
		version:   "7.20240724.13.00",
		nameID:    "7",
		userAgent: "Mozilla/5.0 (PlayStation; PlayStation 4/11.00) AppleWebKit/605.1.15 (KHTML, like Gecko)",
	},
}

// CaptionTrack is one language/kind-specific subtitle track offered by the
// platform. Kind "asr" marks automatically generated captions.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// Automatic reports whether the track is auto-generated.
func (t CaptionTrack) Automatic() bool { return t.Kind == "asr" }

// playerResponse is the subset of the innertube /player reply we use.
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []CaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	VideoDetails struct {
		Title string `json:"title"`
	} `json:"videoDetails"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

// RetryPolicy bounds automatic retries on transient network errors within
// one fetch attempt. Proxied paths get a more lenient policy because proxy
// relays add latency and occasional transient failures.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration
}

// CaptionFetcher talks to the upstream platform for one strategy: fetch
// video metadata, select a caption track, download the subtitle payload.
type CaptionFetcher interface {
	FetchCaptions(ctx context.Context, strategy Strategy, videoID string) (payload, title string, err error)
}

// InnertubeFetcher implements CaptionFetcher against the innertube
// /player API.
type InnertubeFetcher struct {
	directPolicy RetryPolicy
	proxyPolicy  RetryPolicy
	languages    []string
	cookies      []*http.Cookie
	log          Logger
}

// NewInnertubeFetcher builds a fetcher from config. A missing cookies file
// is fine; cookies only help with age-restricted content.
func NewInnertubeFetcher(config *Config, log Logger) *InnertubeFetcher {
	cookies, err := LoadNetscapeCookies(config.CookiesFile)
	if err != nil {
		log.Debugf("no usable cookies file: %v", err)
	} else if len(cookies) > 0 {
		log.Infof("using %d cookies from %s", len(cookies), config.CookiesFile)
	}

	return &InnertubeFetcher{
		directPolicy: RetryPolicy{
			Attempts: config.DirectRetries,
			Delay:    config.DirectRetryDelay,
			Timeout:  config.DirectTimeout,
		},
		proxyPolicy: RetryPolicy{
			Attempts: config.ProxyRetries,
			Delay:    config.ProxyRetryDelay,
			Timeout:  config.ProxyTimeout,
		},
		languages: captionLanguages,
		cookies:   cookies,
		log:       log,
	}
}

// policy returns the retry policy matching the strategy's network path.
func (f *InnertubeFetcher) policy(strategy Strategy) RetryPolicy {
	if strategy.Direct() {
		return f.directPolicy
	}
	return f.proxyPolicy
}

// httpClient builds a client for the strategy's network path.
func (f *InnertubeFetcher) httpClient(strategy Strategy) (*http.Client, error) {
	policy := f.policy(strategy)
	client := &http.Client{Timeout: policy.Timeout}

	if !strategy.Direct() {
		proxyURL, err := url.Parse(strategy.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy endpoint: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	return client, nil
}

// FetchCaptions queries video metadata under the given strategy, selects
// the best caption track and downloads its payload. The title is returned
// whenever it is known, including on ErrNoCaptions.
func (f *InnertubeFetcher) FetchCaptions(ctx context.Context, strategy Strategy, videoID string) (string, string, error) {
	client, err := f.httpClient(strategy)
	if err != nil {
		return "", "", err
	}

	player, err := f.fetchPlayerResponse(ctx, client, strategy, videoID)
	if err != nil {
		return "", "", err
	}

	title := player.VideoDetails.Title
	if player.Captions == nil {
		if reason := player.PlayabilityStatus.Reason; reason != "" {
			f.log.Debugf("%s: video not playable: %s", strategy, reason)
		}
		return "", title, ErrNoCaptions
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	track, ok := selectCaptionTrack(tracks, f.languages)
	if !ok {
		return "", title, ErrNoCaptions
	}

	f.log.Debugf("%s: selected %s track (%s)", strategy, track.LanguageCode, trackKind(track))

	payload, err := f.downloadSubtitles(ctx, client, track)
	if err != nil {
		return "", title, err
	}

	return payload, title, nil
}

// fetchPlayerResponse POSTs to /player with bounded retries on transient
// failures.
func (f *InnertubeFetcher) fetchPlayerResponse(ctx context.Context, client *http.Client, strategy Strategy, videoID string) (*playerResponse, error) {
	profile := clientProfiles[strategy.Client]
	policy := f.policy(strategy)

	clientCtx := map[string]any{
		"clientName":    profile.name,
		"clientVersion": profile.version,
		"hl":            "en",
		"gl":            "US",
	}
	if profile.sdkVersion > 0 {
		clientCtx["androidSdkVersion"] = profile.sdkVersion
	}

	body, err := json.Marshal(map[string]any{
		"videoId":        videoID,
		"context":        map[string]any{"client": clientCtx},
		"racyCheckOk":    true,
		"contentCheckOk": true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling player request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= policy.Attempts; attempt++ {
		if attempt > 0 {
			f.log.Debugf("%s: retrying player request (%d/%d)", strategy, attempt, policy.Attempts)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(policy.Delay):
			}
		}

		player, err := f.doPlayerRequest(ctx, client, profile, body)
		if err == nil {
			return player, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("player request for %s: %w", videoID, lastErr)
}

func (f *InnertubeFetcher) doPlayerRequest(ctx context.Context, client *http.Client, profile clientProfile, body []byte) (*playerResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerEndpoint+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", profile.userAgent)
	req.Header.Set("Referer", youtubeReferer)
	req.Header.Set("X-Youtube-Client-Name", profile.nameID)
	req.Header.Set("X-Youtube-Client-Version", profile.version)
	for _, cookie := range f.cookies {
		req.AddCookie(cookie)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, playerResponseLimit))
	if err != nil {
		return nil, fmt.Errorf("reading player response: %w", err)
	}

	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("decoding player response: %w", err)
	}

	return &player, nil
}

// downloadSubtitles fetches the track payload, trying formats in preference
// order. A failed format moves on to the next; only full exhaustion fails
// the strategy.
func (f *InnertubeFetcher) downloadSubtitles(ctx context.Context, client *http.Client, track CaptionTrack) (string, error) {
	var lastErr error
	for _, format := range captionFormats {
		payload, err := f.downloadFormat(ctx, client, track.BaseURL, format)
		if err != nil {
			f.log.Debugf("subtitle format %s failed: %v", format, err)
			lastErr = err
			continue
		}
		if payload != "" {
			return payload, nil
		}
	}

	if lastErr == nil {
		lastErr = ErrNoCaptions
	}
	return "", fmt.Errorf("downloading subtitles: %w", lastErr)
}

func (f *InnertubeFetcher) downloadFormat(ctx context.Context, client *http.Client, baseURL, format string) (string, error) {
	subtitleURL := baseURL
	if strings.Contains(subtitleURL, "?") {
		subtitleURL += "&fmt=" + format
	} else {
		subtitleURL += "?fmt=" + format
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, subtitleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Referer", youtubeReferer)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("subtitle download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, subtitlePayloadLimit))
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// selectCaptionTrack applies the track precedence: manual track in language
// priority order, then automatic track in the same order.
func selectCaptionTrack(tracks []CaptionTrack, languages []string) (CaptionTrack, bool) {
	for _, lang := range languages {
		for _, track := range tracks {
			if track.LanguageCode == lang && !track.Automatic() {
				return track, true
			}
		}
	}
	for _, lang := range languages {
		for _, track := range tracks {
			if track.LanguageCode == lang {
				return track, true
			}
		}
	}
	return CaptionTrack{}, false
}

func trackKind(track CaptionTrack) string {
	if track.Automatic() {
		return "automatic"
	}
	return "manual"
}
