package internal

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// ClientIdentity is one of the simulated YouTube client apps. Different
// clients get served by different upstream code paths, so a track that is
// blocked for one client is often available to another.
type ClientIdentity string

const (
	ClientWeb     ClientIdentity = "web"
	ClientAndroid ClientIdentity = "android"
	ClientIOS     ClientIdentity = "ios"
	ClientTV      ClientIdentity = "tv"
)

// directClients is the fixed priority order for direct strategies,
// most-compatible client first.
var directClients = []ClientIdentity{ClientWeb, ClientAndroid, ClientIOS, ClientTV}

// proxyClients is the reduced set used through a proxy. Each proxied attempt
// is slow, so only the two most reliable identities are tried.
var proxyClients = []ClientIdentity{ClientWeb, ClientAndroid}

// Strategy is one (network path, client identity) combination. Proxy is an
// endpoint URL, or empty for a direct connection. Strategies are stateless
// descriptors, attempted in order and never mutated.
type Strategy struct {
	Proxy  string
	Client ClientIdentity
}

// Direct reports whether the strategy uses the direct network path.
func (s Strategy) Direct() bool { return s.Proxy == "" }

func (s Strategy) String() string {
	if s.Direct() {
		return "direct/" + string(s.Client)
	}
	return "proxy/" + string(s.Client)
}

// ProxyProber checks whether a proxy endpoint is reachable.
type ProxyProber interface {
	Healthy(ctx context.Context, endpoint string) bool
}

// httpProxyProber probes proxies with a lightweight request routed through
// them. A dead proxy costs at most probeTimeout, never an error.
type httpProxyProber struct {
	probeURL string
	timeout  time.Duration
}

// NewProxyProber creates the default reachability prober.
func NewProxyProber(timeout time.Duration) ProxyProber {
	return &httpProxyProber{
		probeURL: "https://www.youtube.com/generate_204",
		timeout:  timeout,
	}
}

func (p *httpProxyProber) Healthy(ctx context.Context, endpoint string) bool {
	proxyURL, err := url.Parse(endpoint)
	if err != nil {
		return false
	}

	client := &http.Client{
		Timeout:   p.timeout,
		Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.probeURL, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusBadRequest
}

// EnumerateStrategies builds the ordered attempt list for one extraction.
// Direct strategies come first: direct access is cheaper and faster when it
// works. When useProxy is set, at most one confirmed-healthy proxy endpoint
// is appended as a fallback tier with the reduced client set, which bounds
// the total attempt count (each strategy costs a full round trip with its
// own retry budget). Probe failures exclude a proxy, they are never fatal.
func EnumerateStrategies(ctx context.Context, useProxy bool, proxies []string, prober ProxyProber, log Logger) []Strategy {
	strategies := make([]Strategy, 0, len(directClients)+len(proxyClients))
	for _, client := range directClients {
		strategies = append(strategies, Strategy{Client: client})
	}

	if !useProxy || len(proxies) == 0 {
		return strategies
	}

	for _, endpoint := range proxies {
		if !prober.Healthy(ctx, endpoint) {
			log.Debugf("proxy %s failed health check, excluded", redactProxy(endpoint))
			continue
		}
		log.Debugf("proxy %s healthy, adding fallback tier", redactProxy(endpoint))
		for _, client := range proxyClients {
			strategies = append(strategies, Strategy{Proxy: endpoint, Client: client})
		}
		break
	}

	return strategies
}

// redactProxy strips credentials from a proxy endpoint before logging.
func redactProxy(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "<invalid>"
	}
	u.User = nil
	return u.String()
}
