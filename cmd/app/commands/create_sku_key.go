package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/catalog/internal/crypto/domain"
	cryptoService "github.com/allisson/catalog/internal/crypto/service"
)

// RunCreateSKUKey generates a 32-byte SKU encryption key and prints it as
// environment variables. When kmsKeyURI is set the key is wrapped through KMS
// before encoding, so only the KMS ciphertext is ever printed. Key material is
// zeroed from memory once encoded.
//
// Output format:
//   - SKU_ENCRYPTION_KEY="<base64 key or KMS ciphertext>"
//   - SKU_ENCRYPTION_ALGORITHM="<algorithm>"
//   - KMS_KEY_URI="<uri>" (KMS mode only)
func RunCreateSKUKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	algorithm string,
	kmsKeyURI string,
) error {
	alg, err := cryptoDomain.ParseAlgorithm(algorithm)
	if err != nil {
		return err
	}

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate sku key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	encoded := key
	if kmsKeyURI != "" {
		wrapped, err := cryptoService.WrapSKUKey(ctx, kmsService, key, kmsKeyURI)
		if err != nil {
			return err
		}
		encoded = wrapped
	}

	_, _ = fmt.Fprintln(writer, "# SKU Encryption Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "SKU_ENCRYPTION_KEY=\"%s\"\n", base64.StdEncoding.EncodeToString(encoded))
	_, _ = fmt.Fprintf(writer, "SKU_ENCRYPTION_ALGORITHM=\"%s\"\n", alg)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	}

	logger.Info("sku key generated",
		slog.String("algorithm", string(alg)),
		slog.Bool("kms", kmsKeyURI != ""),
	)

	return nil
}
