package domain

import (
	"github.com/allisson/catalog/internal/errors"
)

// Configuration errors make the codec fail closed. They surface as 500
// configuration_error and must abort server startup.
var (
	// ErrSKUKeyNotSet indicates SKU_ENCRYPTION_KEY is absent.
	ErrSKUKeyNotSet = errors.Wrap(errors.ErrConfiguration, "sku encryption key not set")

	// ErrInvalidSKUKeyBase64 indicates SKU_ENCRYPTION_KEY is not valid base64.
	ErrInvalidSKUKeyBase64 = errors.Wrap(errors.ErrConfiguration, "invalid sku encryption key base64")

	// ErrSKUKeyUnwrapFailed indicates the KMS keeper could not decrypt the wrapped key.
	ErrSKUKeyUnwrapFailed = errors.Wrap(errors.ErrConfiguration, "failed to unwrap sku encryption key")

	// ErrInvalidKeySize indicates the key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrConfiguration, "invalid key size")

	// ErrUnsupportedAlgorithm indicates an unknown algorithm was configured.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrConfiguration, "unsupported algorithm")

	// ErrCodecNotConfigured indicates a codec was used without a key.
	ErrCodecNotConfigured = errors.Wrap(errors.ErrConfiguration, "sku codec not configured")
)

// Decryption errors surface as 500 data_integrity_error. Their messages never
// carry plaintext, ciphertext or key material.
var (
	// ErrDecryptionFailed indicates authentication failed: wrong key, tampered or truncated payload.
	ErrDecryptionFailed = errors.Wrap(errors.ErrDataIntegrity, "decryption failed")

	// ErrInvalidEnvelopeFormat indicates the stored value is not "version:algorithm:payload".
	ErrInvalidEnvelopeFormat = errors.Wrap(errors.ErrDataIntegrity, "invalid encrypted sku format")

	// ErrUnsupportedEnvelopeVersion indicates an unknown envelope version tag.
	ErrUnsupportedEnvelopeVersion = errors.Wrap(errors.ErrDataIntegrity, "unsupported encrypted sku version")

	// ErrUnknownEnvelopeAlgorithm indicates the envelope names an algorithm with no cipher.
	ErrUnknownEnvelopeAlgorithm = errors.Wrap(errors.ErrDataIntegrity, "unknown encrypted sku algorithm")

	// ErrInvalidEnvelopeBase64 indicates the payload is not valid base64.
	ErrInvalidEnvelopeBase64 = errors.Wrap(errors.ErrDataIntegrity, "invalid encrypted sku base64")

	// ErrEnvelopeTooShort indicates the payload cannot hold a nonce and a tag.
	ErrEnvelopeTooShort = errors.Wrap(errors.ErrDataIntegrity, "encrypted sku too short")
)

// ErrEmptyPlaintext indicates an attempt to encode an empty SKU.
var ErrEmptyPlaintext = errors.Wrap(errors.ErrInvalidInput, "sku must not be empty")
