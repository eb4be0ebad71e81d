package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap the SKU key.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// DecodeSKUKey decodes a base64 SKU_ENCRYPTION_KEY value.
//
// When keeper is nil the decoded bytes are the key itself. Otherwise they are a
// KMS ciphertext which is unwrapped through the keeper. The returned slice is
// owned by the caller, who should Zero it once the codec has been built.
func DecodeSKUKey(ctx context.Context, encoded string, keeper KMSKeeper) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrSKUKeyNotSet
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidSKUKeyBase64
	}

	key := raw
	if keeper != nil {
		key, err = keeper.Decrypt(ctx, raw)
		Zero(raw)
		if err != nil {
			return nil, ErrSKUKeyUnwrapFailed
		}
	}

	if len(key) != KeySize {
		size := len(key)
		Zero(key)
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKeySize, KeySize, size)
	}

	return key, nil
}
