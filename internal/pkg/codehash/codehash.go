// Package codehash stores one-time verification codes as bcrypt digests.
package codehash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("code hashing failed")
	ErrMismatch      = errors.New("code does not match")
	ErrEmptyCode     = errors.New("empty code")
)

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(code string) (string, error) {
	if code == "" {
		return "", ErrEmptyCode
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashed), nil
}

func (h *Hasher) Compare(hashed, code string) error {
	if hashed == "" || code == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(code))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}

	return nil
}
