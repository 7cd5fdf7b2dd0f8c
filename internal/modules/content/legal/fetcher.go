package legal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/legalcurrent/core/internal/config"
)

// Fetcher pulls the latest items from one upstream source.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]Item, error)
}

// NewFetcher builds the fetcher matching src.Kind.
func NewFetcher(src config.LegalSourceConfig, client *http.Client) (Fetcher, error) {
	if client == nil {
		client = http.DefaultClient
	}
	base := source{name: src.Name, url: src.URL, baseURL: src.BaseURL, limit: src.Limit, client: client}
	if base.limit <= 0 {
		base.limit = 5
	}
	switch src.Kind {
	case config.SourceRSS:
		return &rssFetcher{source: base}, nil
	case config.SourceAustLII:
		return &austLIIFetcher{source: base}, nil
	case config.SourceFedCourt:
		return &fedCourtFetcher{source: base}, nil
	case config.SourceLawSociety:
		return &lawSocietyFetcher{source: base}, nil
	default:
		return nil, fmt.Errorf("unknown legal source kind %q", src.Kind)
	}
}

type source struct {
	name    string
	url     string
	baseURL string
	limit   int
	client  *http.Client
}

func (s source) Name() string { return s.name }

// get fetches the source page and returns its body; non-2xx is an error.
func (s source) get(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.name, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.name, resp.StatusCode)
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxResponseBytes), resp.Body}, nil
}

// absolute resolves href against the configured base, falling back to the
// page URL. Empty hrefs stay empty.
func (s source) absolute(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	baseRaw := s.baseURL
	if baseRaw == "" {
		baseRaw = s.url
	}
	base, err := url.Parse(baseRaw)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
