package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime of every issued token.
const DefaultTTL = time.Hour

var (
	// ErrInvalidToken wraps every verification failure: bad signature, wrong
	// secret, tampering, unexpected algorithm, expiry.
	ErrInvalidToken = errors.New("invalid or expired token")
	errEmptySecret  = errors.New("jwt secret is empty")
)

// Claims is the token payload.
type Claims struct {
	ID                 uint   `json:"id"`
	Email              string `json:"email"`
	SubscriptionStatus bool   `json:"subscription_status"`
	jwtlib.RegisteredClaims
}

// Service issues and verifies HS256 tokens with a single shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Service)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service. The secret is read once at startup and never rotated.
func New(secret string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	s := &Service{secret: []byte(secret), ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for the given identity with iat=now and exp=now+ttl.
func (s *Service) Issue(id uint, email string, subscribed bool) (string, error) {
	now := s.now()
	claims := Claims{
		ID:                 id,
		Email:              email,
		SubscriptionStatus: subscribed,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the decoded claims.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwtlib.ParseWithClaims(tokenStr, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
