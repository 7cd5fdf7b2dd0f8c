package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/legalcurrent/core/internal/models"
	"github.com/legalcurrent/core/internal/pkg/metrics"
	"github.com/legalcurrent/core/internal/store"
)

// Hasher hashes and checks passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(id uint, email string, subscribed bool) (string, error)
}

type Service struct {
	users   store.Users
	hasher  Hasher
	tokens  TokenIssuer
	metrics *metrics.Metrics

	dummyOnce sync.Once
	dummyHash string
}

func NewService(users store.Users, hasher Hasher, tokens TokenIssuer, m *metrics.Metrics) *Service {
	return &Service{users: users, hasher: hasher, tokens: tokens, metrics: m}
}

// Register creates a user with a hashed password and subscription off.
func (s *Service) Register(ctx context.Context, dto *RegisterDTO) (*models.User, error) {
	existing, err := s.users.FindUserByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errEmailInUse
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{Email: dto.Email, Password: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, errEmailInUse
		}
		return nil, err
	}
	return u, nil
}

// Login returns a signed token. Unknown email and wrong password both yield
// errInvalidCredentials.
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (string, error) {
	u, err := s.users.FindUserByEmail(ctx, dto.Email)
	if err != nil {
		s.metrics.RecordLogin(metrics.LoginError)
		return "", err
	}
	if u == nil {
		// burn a comparable amount of time so unknown emails are not distinguishable
		_, _ = s.hasher.Verify(dto.Password, s.placeholderHash())
		s.metrics.RecordLogin(metrics.LoginRejected)
		return "", errInvalidCredentials
	}

	ok, err := s.hasher.Verify(dto.Password, u.Password)
	if err != nil {
		s.metrics.RecordLogin(metrics.LoginError)
		return "", err
	}
	if !ok {
		s.metrics.RecordLogin(metrics.LoginRejected)
		return "", errInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.SubscriptionStatus)
	if err != nil {
		s.metrics.RecordLogin(metrics.LoginError)
		return "", err
	}
	s.metrics.RecordLogin(metrics.LoginSuccess)
	return token, nil
}

// UpdateSubscription sets the flag for the user with the given email.
func (s *Service) UpdateSubscription(ctx context.Context, email string, subscribed bool) error {
	n, err := s.users.UpdateSubscription(ctx, email, subscribed)
	if err != nil {
		return err
	}
	if n == 0 {
		return errUserNotFound
	}
	return nil
}

func (s *Service) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("legalcurrent-placeholder")
		if err != nil {
			panic(fmt.Sprintf("hash placeholder password: %v", err))
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
