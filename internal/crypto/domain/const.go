package domain

import "fmt"

// Algorithm represents the AEAD algorithm used to encrypt a field.
//
// Both supported algorithms use a 256-bit key, a 12-byte random nonce and a
// 16-byte authentication tag, so the same key can serve either of them.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM. Preferred on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305. Preferred without AES hardware support.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required length in bytes of the SKU encryption key.
const KeySize = 32

// EnvelopeVersion is the current version tag of the encrypted SKU text format.
const EnvelopeVersion = "v1"

// ParseAlgorithm converts a configuration value into an Algorithm.
// An empty value selects AESGCM.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch Algorithm(value) {
	case "":
		return AESGCM, nil
	case AESGCM, ChaCha20:
		return Algorithm(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, value)
	}
}

// Supported reports whether the algorithm has a cipher implementation.
func (a Algorithm) Supported() bool {
	return a == AESGCM || a == ChaCha20
}
