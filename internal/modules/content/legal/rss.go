package legal

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

type rssFetcher struct {
	source
}

func (f *rssFetcher) Fetch(ctx context.Context) ([]Item, error) {
	body, err := f.get(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s feed: %w", f.name, err)
	}

	n := min(len(feed.Items), f.limit)
	items := make([]Item, 0, n)
	for _, entry := range feed.Items[:n] {
		item := Item{
			Source:    f.name,
			Title:     strings.TrimSpace(entry.Title),
			Link:      f.absolute(entry.Link),
			Published: entry.Published,
			Summary:   strings.TrimSpace(entry.Description),
			Content:   entry.Content,
		}
		if entry.PublishedParsed != nil {
			t := entry.PublishedParsed.UTC()
			item.PublishedAt = &t
		} else if entry.UpdatedParsed != nil {
			t := entry.UpdatedParsed.UTC()
			item.PublishedAt = &t
		}
		items = append(items, item)
	}
	return items, nil
}
