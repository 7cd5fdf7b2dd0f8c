package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/legalcurrent/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Article{}))
	return New(db)
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return New(db), mock
}

func strPtr(s string) *string { return &s }

func TestUserLifecycle(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	user, err := s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@x.com", Password: "hash"}))

	user, err = s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.False(t, user.SubscriptionStatus)
	assert.Equal(t, "hash", user.Password)

	err = s.CreateUser(ctx, &models.User{Email: "a@x.com", Password: "other"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	n, err := s.UpdateSubscription(ctx, "a@x.com", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = s.UpdateSubscription(ctx, "a@x.com", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	user, err = s.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.SubscriptionStatus)

	n, err = s.UpdateSubscription(ctx, "nobody@x.com", true)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEmailLookupIsExact(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "Case@x.com", Password: "h"}))
	user, err := s.FindUserByEmail(ctx, "case@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestArticles(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	all, err := s.ListArticles(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	pub := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	premium := &models.Article{Title: "P", Summary: "s", FullContent: "f", Category: strPtr(models.PremiumCategory), PublicationDate: pub}
	free := &models.Article{Title: "F", Summary: "s", FullContent: "f", PublicationDate: pub, SourceURL: strPtr("https://example.com/a")}
	require.NoError(t, s.CreateArticle(ctx, premium))
	require.NoError(t, s.CreateArticle(ctx, free))
	assert.NotZero(t, premium.ID)
	assert.False(t, premium.CreatedAt.IsZero())

	all, err = s.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "P", all[0].Title)
	assert.Nil(t, all[1].Category)

	gated, err := s.ListArticlesByCategory(ctx, models.PremiumCategory)
	require.NoError(t, err)
	require.Len(t, gated, 1)
	assert.Equal(t, premium.ID, gated[0].ID)

	ok, err := s.ArticleExistsBySourceURL(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ArticleExistsBySourceURL(ctx, "https://example.com/b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreWrapsDriverErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	t.Run("find user", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `Users`")).WillReturnError(boom)

		user, err := s.FindUserByEmail(ctx, "a@x.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create user", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `Users`")).WillReturnError(boom)

		err := s.CreateUser(ctx, &models.User{Email: "a@x.com", Password: "h"})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update subscription", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `Users` SET")).WillReturnError(boom)

		n, err := s.UpdateSubscription(ctx, "a@x.com", true)
		assert.Zero(t, n)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list articles", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `Articles`")).WillReturnError(boom)

		articles, err := s.ListArticles(ctx)
		assert.Nil(t, articles)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list by category", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `Articles` WHERE category = ?")).WillReturnError(boom)

		_, err := s.ListArticlesByCategory(ctx, models.PremiumCategory)
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("create article", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `Articles`")).WillReturnError(boom)

		err := s.CreateArticle(ctx, &models.Article{Title: "t", Summary: "s", FullContent: "f", PublicationDate: time.Now()})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListArticlesMapsRows(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "summary", "full_content", "category", "publication_date", "source_url", "createdAt", "updatedAt"}).
		AddRow(1, "T", "S", "F", "Premium", now, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `Articles` WHERE category = ?")).WillReturnRows(rows)

	articles, err := s.ListArticlesByCategory(context.Background(), models.PremiumCategory)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "T", articles[0].Title)
	require.NotNil(t, articles[0].Category)
	assert.Equal(t, "Premium", *articles[0].Category)
	assert.Nil(t, articles[0].SourceURL)
	assert.Equal(t, now, articles[0].PublicationDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
