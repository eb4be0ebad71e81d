package service

import (
	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"
)

// supportedAlgorithms lists every algorithm a cipher suite carries.
var supportedAlgorithms = []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20}

// CipherSuite holds one AEAD instance per supported algorithm, all keyed with
// the same 32-byte key.
type CipherSuite map[cryptoDomain.Algorithm]AEAD

// NewCipherSuite builds a cipher for every supported algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes.
func NewCipherSuite(key []byte) (CipherSuite, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	suite := make(CipherSuite, len(supportedAlgorithms))
	for _, alg := range supportedAlgorithms {
		var (
			c   AEAD
			err error
		)
		switch alg {
		case cryptoDomain.AESGCM:
			c, err = NewAESGCM(key)
		case cryptoDomain.ChaCha20:
			c, err = NewChaCha20Poly1305(key)
		}
		if err != nil {
			return nil, err
		}
		suite[alg] = c
	}
	return suite, nil
}

// Cipher returns the AEAD for alg, or ErrUnsupportedAlgorithm.
func (s CipherSuite) Cipher(alg cryptoDomain.Algorithm) (AEAD, error) {
	c, ok := s[alg]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	return c, nil
}
