package article

import (
	"context"

	"github.com/legalcurrent/core/internal/models"
	"github.com/legalcurrent/core/internal/store"
)

type Service struct {
	articles store.Articles
}

func NewService(articles store.Articles) *Service {
	return &Service{articles: articles}
}

func (s *Service) List(ctx context.Context) ([]models.Article, error) {
	return s.articles.ListArticles(ctx)
}

func (s *Service) ListPremium(ctx context.Context) ([]models.Article, error) {
	return s.articles.ListArticlesByCategory(ctx, models.PremiumCategory)
}

func (s *Service) Create(ctx context.Context, dto *CreateArticleDTO) (*models.Article, error) {
	published, err := ParseDate(dto.PublicationDate)
	if err != nil {
		return nil, err
	}
	a := &models.Article{
		Title:           dto.Title,
		Summary:         dto.Summary,
		FullContent:     dto.FullContent,
		Category:        dto.Category,
		PublicationDate: published,
		SourceURL:       dto.SourceURL,
	}
	if err := s.articles.CreateArticle(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
