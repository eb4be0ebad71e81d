// Package service provides the cryptographic services behind SKU field encryption:
// AEAD ciphers (AES-256-GCM, ChaCha20-Poly1305), the SKU codec and KMS key wrapping.
package service

import (
	"context"

	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and a fresh random nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length in bytes.
	NonceSize() int

	// Overhead returns the authentication tag length in bytes.
	Overhead() int
}

// SKUCodec is the reversible keyed transformation between a plaintext SKU and
// the text envelope persisted in its place.
//
// Encode is probabilistic: encoding the same plaintext twice yields different
// envelopes, so envelopes must never be compared to test SKU equality.
type SKUCodec interface {
	// Encode encrypts a non-empty plaintext SKU into a text-safe envelope.
	Encode(plaintext string) (string, error)

	// Decode reverses Encode. It fails with an error wrapping errors.ErrDataIntegrity
	// when the envelope is malformed, truncated, tampered or produced under another key.
	Decode(ciphertext string) (string, error)
}

// KMSService opens KMS keepers used to wrap and unwrap the SKU key.
type KMSService interface {
	// OpenKeeper opens a keeper for the provider encoded in keyURI.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
