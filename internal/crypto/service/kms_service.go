package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadSKUKey resolves the raw SKU key from its configured base64 form.
//
// With an empty kmsKeyURI the value is the key itself; otherwise it is unwrapped
// through the KMS keeper, which is closed before returning.
func LoadSKUKey(ctx context.Context, kms KMSService, encoded, kmsKeyURI string) ([]byte, error) {
	if kmsKeyURI == "" {
		return cryptoDomain.DecodeSKUKey(ctx, encoded, nil)
	}

	keeper, err := kms.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	return cryptoDomain.DecodeSKUKey(ctx, encoded, keeper)
}

// WrapSKUKey encrypts a raw SKU key with the KMS keeper at kmsKeyURI.
func WrapSKUKey(ctx context.Context, kms KMSService, key []byte, kmsKeyURI string) ([]byte, error) {
	keeper, err := kms.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	wrapped, err := keeper.Encrypt(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap sku key: %w", err)
	}
	return wrapped, nil
}
