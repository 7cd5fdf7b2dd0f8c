package legal

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func (s source) document(ctx context.Context) (*goquery.Document, error) {
	body, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse %s page: %w", s.name, err)
	}
	return doc, nil
}

// austLIIFetcher reads the first links of the first <pre> block on an
// AustLII database listing.
type austLIIFetcher struct {
	source
}

func (f *austLIIFetcher) Fetch(ctx context.Context) ([]Item, error) {
	doc, err := f.document(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, f.limit)
	doc.Find("pre").First().Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(items) >= f.limit {
			return false
		}
		href, _ := a.Attr("href")
		items = append(items, Item{
			Source: f.name,
			Title:  strings.TrimSpace(a.Text()),
			Link:   f.absolute(href),
		})
		return true
	})
	return items, nil
}

// fedCourtFetcher reads the judgments table; rows with fewer than three
// cells are skipped.
type fedCourtFetcher struct {
	source
}

func (f *fedCourtFetcher) Fetch(ctx context.Context) ([]Item, error) {
	doc, err := f.document(ctx)
	if err != nil {
		return nil, err
	}

	rows := doc.Find("table.judgments-table tbody tr")
	items := make([]Item, 0, f.limit)
	rows.Slice(0, min(f.limit, rows.Length())).Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 3 {
			return
		}
		first := cols.Eq(0)
		href, _ := first.Find("a").First().Attr("href")
		items = append(items, Item{
			Source: f.name,
			Title:  strings.TrimSpace(first.Text()),
			Date:   strings.TrimSpace(cols.Eq(1).Text()),
			Link:   f.absolute(href),
		})
	})
	return items, nil
}

// lawSocietyFetcher reads .news-article cards; cards missing a heading, link
// or date are skipped.
type lawSocietyFetcher struct {
	source
}

func (f *lawSocietyFetcher) Fetch(ctx context.Context) ([]Item, error) {
	doc, err := f.document(ctx)
	if err != nil {
		return nil, err
	}

	cards := doc.Find(".news-article")
	items := make([]Item, 0, f.limit)
	cards.Slice(0, min(f.limit, cards.Length())).Each(func(_ int, card *goquery.Selection) {
		title := card.Find("h3").First()
		link := card.Find("a").First()
		date := card.Find(".date").First()
		if title.Length() == 0 || link.Length() == 0 || date.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		items = append(items, Item{
			Source: f.name,
			Title:  strings.TrimSpace(title.Text()),
			Link:   f.absolute(href),
			Date:   strings.TrimSpace(date.Text()),
		})
	})
	return items, nil
}
