// Package service provides the admin token service: random token generation and
// Argon2id hashing through go-pwdhash. Only the hash is ever configured.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/catalog/internal/errors"
)

// AdminTokenService generates, hashes and verifies admin bearer tokens.
type AdminTokenService interface {
	// Generate returns a new random token and its hash.
	Generate() (plainToken string, tokenHash string, err error)
	// Hash hashes a plain token.
	Hash(plainToken string) (string, error)
	// Verify reports whether plainToken matches tokenHash in constant time.
	Verify(plainToken string, tokenHash string) bool
}

type adminTokenService struct {
	hasher *pwdhash.PasswordHasher
}

// Generate creates a 32-byte random token, URL-safe base64 encoded.
func (s *adminTokenService) Generate() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate admin token")
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)
	tokenHash, err := s.Hash(plainToken)
	if err != nil {
		return "", "", err
	}
	return plainToken, tokenHash, nil
}

// Hash hashes a plain token using Argon2id.
func (s *adminTokenService) Hash(plainToken string) (string, error) {
	tokenHash, err := s.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash admin token")
	}
	return tokenHash, nil
}

// Verify compares a plain token against its hash.
func (s *adminTokenService) Verify(plainToken string, tokenHash string) bool {
	ok, err := s.hasher.Verify([]byte(plainToken), tokenHash)
	if err != nil {
		return false
	}
	return ok
}

// NewAdminTokenService creates an AdminTokenService using the Moderate policy.
func NewAdminTokenService() AdminTokenService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// unreachable with a built-in policy
		panic(err)
	}

	return &adminTokenService{hasher: hasher}
}
