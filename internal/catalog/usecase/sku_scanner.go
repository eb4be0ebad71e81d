package usecase

import (
	"context"
	"log/slog"
	"strings"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	cryptoService "github.com/allisson/catalog/internal/crypto/service"
	apperrors "github.com/allisson/catalog/internal/errors"
	"github.com/allisson/catalog/internal/metrics"
)

// skuScanner answers SKU questions by decrypting every stored SKU and
// comparing plaintext in memory.
//
// Stored envelopes are probabilistic, so "WHERE sku = ?" on ciphertext can
// never match and must not be used for uniqueness. The full scan is O(n) in
// the number of products per call, and a concurrent insert between the scan
// and the write can still produce a duplicate.
//
// TODO: add a keyed-hash (HMAC) column with a unique index to replace the scan
// for equality checks and close the scan-then-insert race.
type skuScanner struct {
	productRepo ProductRepository
	codec       cryptoService.SKUCodec
	metrics     metrics.BusinessMetrics
	logger      *slog.Logger
}

// decode decrypts one stored SKU. Failures are logged with the row id only.
func (s *skuScanner) decode(ctx context.Context, productID int64, encrypted string) (string, error) {
	sku, err := s.codec.Decode(encrypted)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to decode product sku",
			slog.Int64("product_id", productID),
			slog.Any("error", err),
		)
		return "", apperrors.Wrapf(err, "product %d", productID)
	}
	return sku, nil
}

// scan decrypts every stored SKU, calling visit until it returns false.
func (s *skuScanner) scan(
	ctx context.Context,
	operation string,
	visit func(productID int64, sku string) bool,
) error {
	records, err := s.productRepo.ListSKUs(ctx)
	if err != nil {
		return err
	}

	decoded := 0
	defer func() {
		s.metrics.RecordSKUScan(ctx, operation, decoded)
	}()

	for _, record := range records {
		sku, err := s.decode(ctx, record.ProductID, record.EncryptedSKU)
		if err != nil {
			return err
		}
		decoded++
		if !visit(record.ProductID, sku) {
			return nil
		}
	}
	return nil
}

// ensureUnique fails with ErrDuplicateSKU when another product has exactly sku.
// The comparison is case-sensitive. excludeID skips the product being updated.
func (s *skuScanner) ensureUnique(ctx context.Context, sku string, excludeID int64) error {
	duplicate := false
	err := s.scan(ctx, "sku_unique", func(productID int64, existing string) bool {
		if productID != excludeID && existing == sku {
			duplicate = true
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if duplicate {
		return catalogDomain.ErrDuplicateSKU
	}
	return nil
}

// match returns the ids of products whose SKU contains needle, ignoring case.
// The result is never nil, so an empty match restricts a listing to nothing.
func (s *skuScanner) match(ctx context.Context, needle string) ([]int64, error) {
	needle = strings.ToLower(needle)
	ids := []int64{}
	err := s.scan(ctx, "sku_filter", func(productID int64, sku string) bool {
		if strings.Contains(strings.ToLower(sku), needle) {
			ids = append(ids, productID)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
