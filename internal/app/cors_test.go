package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginMatcher(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		origin   string
		want     bool
	}{
		{"exact host", []string{"app.example.com"}, "https://app.example.com", true},
		{"host case-insensitive", []string{"App.Example.com"}, "https://APP.example.COM", true},
		{"exact host other host", []string{"app.example.com"}, "https://evil.com", false},
		{"exact host other port", []string{"app.example.com"}, "https://app.example.com:8443", false},
		{"subdomain", []string{"*.example.com"}, "https://news.example.com", true},
		{"nested subdomain", []string{"*.example.com"}, "https://a.b.example.com", true},
		{"subdomain excludes apex", []string{"*.example.com"}, "https://example.com", false},
		{"subdomain lookalike", []string{"*.example.com"}, "https://badexample.com", false},
		{"subdomain other tld", []string{"*.example.com"}, "https://example.org", false},
		{"any port", []string{"localhost:*"}, "http://localhost:5173", true},
		{"any port needs a port", []string{"localhost:*"}, "http://localhost", false},
		{"any port other host", []string{"localhost:*"}, "http://127.0.0.1:5173", false},
		{"any port prefix host", []string{"localhost:*"}, "http://localhost.evil.com:80", false},
		{"scheme pinned", []string{"https://app.example.com"}, "https://app.example.com", true},
		{"scheme pinned mismatch", []string{"https://app.example.com"}, "http://app.example.com", false},
		{"scheme pinned wildcard", []string{"https://*.example.com"}, "http://a.example.com", false},
		{"not a url", []string{"*"}, "not a url", false},
		{"non-http scheme", []string{"app.example.com"}, "ftp://app.example.com", false},
		{"blank patterns", []string{"", "  "}, "https://app.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newOriginMatcher(tt.patterns).Allow(tt.origin))
		})
	}
}
