// Package store persists users and articles through GORM.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalcurrent/core/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateEmail is returned by CreateUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already in use")

// Users is the credential store.
type Users interface {
	// FindUserByEmail returns (nil, nil) when no user matches.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// UpdateSubscription returns the number of rows matched by email.
	UpdateSubscription(ctx context.Context, email string, subscribed bool) (int64, error)
}

// Articles is the content store.
type Articles interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	ListArticlesByCategory(ctx context.Context, category string) ([]models.Article, error)
	CreateArticle(ctx context.Context, article *models.Article) error
	ArticleExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error)
}

// Store implements Users and Articles on a *gorm.DB.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var (
	_ Users    = (*Store)(nil)
	_ Articles = (*Store)(nil)
)

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UpdateSubscription(ctx context.Context, email string, subscribed bool) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("subscription_status", subscribed)
	if res.Error != nil {
		return 0, fmt.Errorf("update subscription: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) ListArticles(ctx context.Context) ([]models.Article, error) {
	articles := make([]models.Article, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (s *Store) ListArticlesByCategory(ctx context.Context, category string) ([]models.Article, error) {
	articles := make([]models.Article, 0)
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list articles by category: %w", err)
	}
	return articles, nil
}

func (s *Store) CreateArticle(ctx context.Context, article *models.Article) error {
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

func (s *Store) ArticleExistsBySourceURL(ctx context.Context, sourceURL string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("source_url = ?", sourceURL).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check article source: %w", err)
	}
	return count > 0, nil
}
