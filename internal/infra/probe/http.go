package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProbe checks an HTTP dependency with a GET request.
type HTTPProbe struct {
	name   string
	url    string
	client *http.Client
}

// NewHTTPProbe creates an HTTP prober for a health or status URL.
func NewHTTPProbe(name, url string) *HTTPProbe {
	return &HTTPProbe{
		name: name,
		url:  url,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (p *HTTPProbe) Name() string { return p.name }

// Probe performs the GET. A 5xx response counts as a dependency failure;
// 4xx responses mean the dependency is up but the probe is misdirected, so
// they do not fail the probe.
func (p *HTTPProbe) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return classify(p.name, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return classify(p.name, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusInternalServerError {
		return classify(p.name, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}
