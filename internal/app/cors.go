package app

import (
	"net/url"
	"strings"
)

// originRule is one allowed_origins entry. A rule may pin the scheme
// ("https://app.example.com"); without one any scheme matches.
type originRule struct {
	scheme string
	host   string
}

// originMatcher decides which browser origins may call the API.
//
// Supported host forms:
//
//	app.example.com   exact host, any port-less origin
//	*.example.com     any subdomain, not the apex itself
//	localhost:*       the host on any port
type originMatcher struct {
	rules []originRule
}

func newOriginMatcher(patterns []string) *originMatcher {
	m := &originMatcher{rules: make([]originRule, 0, len(patterns))}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		var r originRule
		if scheme, rest, ok := strings.Cut(p, "://"); ok {
			r.scheme, p = scheme, rest
		}
		r.host = strings.TrimSuffix(p, "/")
		m.rules = append(m.rules, r)
	}
	return m
}

// Allow reports whether origin matches any rule. Origins that are not
// absolute http(s) URLs are rejected.
func (m *originMatcher) Allow(origin string) bool {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, r := range m.rules {
		if r.scheme != "" && r.scheme != scheme {
			continue
		}
		if matchHost(r.host, host) {
			return true
		}
	}
	return false
}

func matchHost(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		suffix := pattern[1:]
		return len(host) > len(suffix) && strings.HasSuffix(host, suffix) && !strings.Contains(host, ":")
	case strings.HasSuffix(pattern, ":*"):
		name, port, ok := strings.Cut(host, ":")
		return ok && port != "" && name == strings.TrimSuffix(pattern, ":*")
	}
	return false
}
