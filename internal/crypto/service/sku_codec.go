package service

import (
	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"
)

// skuAAD binds every envelope to the SKU field so a ciphertext copied from
// another encrypted column does not authenticate here.
var skuAAD = []byte("catalog.product.sku")

// AEADSKUCodec implements SKUCodec on top of the AEAD ciphers.
//
// New envelopes are written with the configured algorithm; envelopes tagged with
// any supported algorithm decode under the same key. A nil or zero-value codec
// fails closed with ErrCodecNotConfigured.
type AEADSKUCodec struct {
	active  cryptoDomain.Algorithm
	ciphers CipherSuite
}

// NewSKUCodec builds a codec from a 32-byte key. The key bytes are not retained
// beyond the cipher instances, so callers may Zero their copy afterwards.
func NewSKUCodec(key []byte, alg cryptoDomain.Algorithm) (*AEADSKUCodec, error) {
	if !alg.Supported() {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	ciphers, err := NewCipherSuite(key)
	if err != nil {
		return nil, err
	}

	return &AEADSKUCodec{active: alg, ciphers: ciphers}, nil
}

// Algorithm returns the algorithm used for new envelopes.
func (c *AEADSKUCodec) Algorithm() cryptoDomain.Algorithm {
	if c == nil {
		return ""
	}
	return c.active
}

// Encode encrypts plaintext under a fresh random nonce.
func (c *AEADSKUCodec) Encode(plaintext string) (string, error) {
	if !c.configured() {
		return "", cryptoDomain.ErrCodecNotConfigured
	}
	if plaintext == "" {
		return "", cryptoDomain.ErrEmptyPlaintext
	}

	ciphertext, nonce, err := c.ciphers[c.active].Encrypt([]byte(plaintext), skuAAD)
	if err != nil {
		return "", err
	}

	payload := make([]byte, 0, len(nonce)+len(ciphertext))
	payload = append(payload, nonce...)
	payload = append(payload, ciphertext...)

	envelope := cryptoDomain.EncryptedSKU{
		Version:   cryptoDomain.EnvelopeVersion,
		Algorithm: c.active,
		Payload:   payload,
	}
	return envelope.String(), nil
}

// Decode parses and authenticates an envelope, returning the original plaintext.
func (c *AEADSKUCodec) Decode(ciphertext string) (string, error) {
	if !c.configured() {
		return "", cryptoDomain.ErrCodecNotConfigured
	}

	envelope, err := cryptoDomain.ParseEncryptedSKU(ciphertext)
	if err != nil {
		return "", err
	}

	aead, err := c.ciphers.Cipher(envelope.Algorithm)
	if err != nil {
		return "", cryptoDomain.ErrUnknownEnvelopeAlgorithm
	}

	nonceSize := aead.NonceSize()
	if len(envelope.Payload) < nonceSize+aead.Overhead() {
		return "", cryptoDomain.ErrEnvelopeTooShort
	}

	plaintext, err := aead.Decrypt(envelope.Payload[nonceSize:], envelope.Payload[:nonceSize], skuAAD)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

func (c *AEADSKUCodec) configured() bool {
	return c != nil && len(c.ciphers) > 0 && c.ciphers[c.active] != nil
}
