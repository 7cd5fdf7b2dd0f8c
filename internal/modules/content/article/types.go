package article

import (
	"errors"
	"strings"
	"time"
)

var errInvalidDate = errors.New("publication_date must be an ISO-8601 date or timestamp")

const (
	msgListFailed   = "Failed to retrieve articles"
	msgCreateFailed = "Failed to create article"
	msgPaidDenied   = "Access denied. Please subscribe to view this content."
	msgPaidFailed   = "Failed to retrieve paid articles"
	msgArticleBody  = "title, summary, full_content and publication_date are required"
)

type CreateArticleDTO struct {
	Title           string  `json:"title"            binding:"required"`
	Summary         string  `json:"summary"          binding:"required"`
	FullContent     string  `json:"full_content"     binding:"required"`
	Category        *string `json:"category"`
	PublicationDate string  `json:"publication_date" binding:"required"`
	SourceURL       *string `json:"source_url"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and the common date-only and
// zone-less forms, which are read as UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate
}
