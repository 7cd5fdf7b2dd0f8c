package legal

import "time"

// Item is one entry of the aggregated legal content feed.
type Item struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
	Date      string `json:"date,omitempty"`
	Summary   string `json:"summary,omitempty"`

	// Only populated by feed sources; used by the importer.
	PublishedAt *time.Time `json:"-"`
	Content     string     `json:"-"`
}

const (
	cacheKey         = "legal:latest"
	defaultUserAgent = "LegalCurrent/1.0"
	maxResponseBytes = 4 << 20
)
