package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored passwords.
const DefaultCost = 10

// ErrTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hasher hashes and verifies passwords with a salted bcrypt digest.
type Hasher struct {
	cost int
}

// NewHasher returns a bcrypt hasher; out-of-range costs fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash. A mismatch is not an error;
// a malformed hash is.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
