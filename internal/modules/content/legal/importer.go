package legal

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/legalcurrent/core/internal/models"
	"github.com/legalcurrent/core/internal/pkg/metrics"
	"github.com/legalcurrent/core/internal/store"
	"go.uber.org/zap"
)

const maxTitleRunes = 255

// Importer copies new feed items into the Articles table, keyed by link.
type Importer struct {
	fetchers []Fetcher
	articles store.Articles
	category string
	logger   *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewImporter(fetchers []Fetcher, articles store.Articles, category string, logger *zap.Logger, m *metrics.Metrics) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		fetchers: fetchers,
		articles: articles,
		category: category,
		logger:   logger.Named("legal.import"),
		metrics:  m,
		now:      time.Now,
	}
}

// Run imports every source once. Source failures are collected and returned
// together after the remaining sources have been processed.
func (i *Importer) Run(ctx context.Context) error {
	var errs []error
	total := 0
	for _, f := range i.fetchers {
		items, err := f.Fetch(ctx)
		i.metrics.RecordLegalFetch(f.Name(), err == nil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		n, err := i.importItems(ctx, items)
		total += n
		if err != nil {
			errs = append(errs, fmt.Errorf("import %s: %w", f.Name(), err))
		}
	}
	i.metrics.RecordImported(total)
	if total > 0 {
		i.logger.Info("imported legal articles", zap.Int("count", total))
	}
	return errors.Join(errs...)
}

// importItems stores every new item it can. A failed item is logged and
// skipped; its error is returned with the others once the batch is done.
func (i *Importer) importItems(ctx context.Context, items []Item) (int, error) {
	var errs []error
	imported := 0
	for _, item := range items {
		if item.Link == "" || item.Title == "" {
			continue
		}
		exists, err := i.articles.ArticleExistsBySourceURL(ctx, item.Link)
		if err != nil {
			i.logger.Warn("check imported article", zap.String("link", item.Link), zap.Error(err))
			errs = append(errs, fmt.Errorf("check %s: %w", item.Link, err))
			continue
		}
		if exists {
			continue
		}
		if err := i.articles.CreateArticle(ctx, i.toArticle(item)); err != nil {
			i.logger.Warn("store imported article", zap.String("link", item.Link), zap.Error(err))
			errs = append(errs, fmt.Errorf("store %s: %w", item.Link, err))
			continue
		}
		imported++
	}
	return imported, errors.Join(errs...)
}

func (i *Importer) toArticle(item Item) *models.Article {
	summary := firstNonEmpty(item.Summary, item.Title)
	published := i.now().UTC()
	if item.PublishedAt != nil {
		published = *item.PublishedAt
	}
	category := i.category
	link := item.Link
	return &models.Article{
		Title:           truncateRunes(item.Title, maxTitleRunes),
		Summary:         summary,
		FullContent:     firstNonEmpty(item.Content, summary),
		Category:        &category,
		PublicationDate: published,
		SourceURL:       &link,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
