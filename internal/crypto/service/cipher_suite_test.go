package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"
	apperrors "github.com/allisson/catalog/internal/errors"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewCipherSuite(t *testing.T) {
	suite, err := NewCipherSuite(newTestKey(t))
	require.NoError(t, err)
	assert.Len(t, suite, 2)

	c, err := suite.Cipher(cryptoDomain.AESGCM)
	require.NoError(t, err)
	assert.IsType(t, &AESGCMCipher{}, c)

	c, err = suite.Cipher(cryptoDomain.ChaCha20)
	require.NoError(t, err)
	assert.IsType(t, &ChaCha20Poly1305Cipher{}, c)

	_, err = suite.Cipher(cryptoDomain.Algorithm("rot13"))
	assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)

	for _, size := range []int{0, 16, 64} {
		_, err := NewCipherSuite(make([]byte, size))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "size %d", size)
	}
}

func TestAEADCiphers(t *testing.T) {
	key := newTestKey(t)
	otherKey := newTestKey(t)
	suite, err := NewCipherSuite(key)
	require.NoError(t, err)
	otherSuite, err := NewCipherSuite(otherKey)
	require.NoError(t, err)

	for _, alg := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		t.Run(string(alg), func(t *testing.T) {
			c, err := suite.Cipher(alg)
			require.NoError(t, err)
			assert.Equal(t, 12, c.NonceSize())
			assert.Equal(t, 16, c.Overhead())

			plaintext := []byte("ABC-100")
			aad := []byte("context")

			ciphertext, nonce, err := c.Encrypt(plaintext, aad)
			require.NoError(t, err)
			assert.Len(t, nonce, c.NonceSize())
			assert.Len(t, ciphertext, len(plaintext)+c.Overhead())

			decrypted, err := c.Decrypt(ciphertext, nonce, aad)
			require.NoError(t, err)
			assert.Equal(t, plaintext, decrypted)

			_, err = c.Decrypt(ciphertext, nonce, []byte("other"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

			_, err = c.Decrypt(ciphertext, nonce[:8], aad)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

			other, err := otherSuite.Cipher(alg)
			require.NoError(t, err)
			_, err = other.Decrypt(ciphertext, nonce, aad)
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		})
	}
}
