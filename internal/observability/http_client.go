package observability

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	sentryhttpclient "github.com/getsentry/sentry-go/httpclient"
)

// PropagationTargets returns the hostnames of the given URLs, skipping any
// that are empty or unparseable.
func PropagationTargets(rawURLs ...string) []string {
	targets := make([]string, 0, len(rawURLs))
	seen := map[string]bool{}
	for _, raw := range rawURLs {
		parsed, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		host := strings.ToLower(parsed.Hostname())
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true
		targets = append(targets, host)
	}
	return targets
}

func WrapRoundTripper(base http.RoundTripper, targets []string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return sentryhttpclient.NewSentryRoundTripper(
		base,
		sentryhttpclient.WithTracePropagationTargets(targets),
	)
}

// NewHTTPClient returns a traced client that forwards trace headers only to
// the listed hosts.
func NewHTTPClient(timeout time.Duration, targets []string) *http.Client {
	client := &http.Client{
		Transport: WrapRoundTripper(http.DefaultTransport, targets),
	}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return client
}
