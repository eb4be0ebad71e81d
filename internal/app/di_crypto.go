package app

import (
	"fmt"
	"log/slog"

	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"
	cryptoService "github.com/allisson/catalog/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// SKUCodec returns the SKU codec built from SKU_ENCRYPTION_KEY.
// A missing or invalid key is a configuration error and is returned as such.
func (c *Container) SKUCodec() (cryptoService.SKUCodec, error) {
	var err error
	c.skuCodecInit.Do(func() {
		c.skuCodec, err = c.initSKUCodec()
		if err != nil {
			c.setInitError("skuCodec", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("skuCodec"); storedErr != nil {
		return nil, storedErr
	}
	return c.skuCodec, nil
}

// initKMSService creates the KMS service for unwrapping the SKU key.
func (c *Container) initKMSService() cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initSKUCodec resolves the key (unwrapping through KMS when configured) and
// zeroes the raw key bytes once the ciphers hold their own copies.
func (c *Container) initSKUCodec() (cryptoService.SKUCodec, error) {
	alg, err := cryptoDomain.ParseAlgorithm(c.config.SKUEncryptionAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid SKU_ENCRYPTION_ALGORITHM: %w", err)
	}

	key, err := cryptoService.LoadSKUKey(
		c.ctx,
		c.KMSService(),
		c.config.SKUEncryptionKey,
		c.config.KMSKeyURI,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load sku key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	codec, err := cryptoService.NewSKUCodec(key, alg)
	if err != nil {
		return nil, fmt.Errorf("failed to create sku codec: %w", err)
	}

	c.Logger().Info("sku codec ready",
		slog.String("algorithm", string(alg)),
		slog.Bool("kms", c.config.KMSKeyURI != ""),
		slog.String("kms_provider", c.config.KMSProvider),
	)

	return codec, nil
}
