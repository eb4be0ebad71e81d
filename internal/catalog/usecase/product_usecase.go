package usecase

import (
	"context"
	"log/slog"
	"slices"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	cryptoService "github.com/allisson/catalog/internal/crypto/service"
	"github.com/allisson/catalog/internal/database"
	"github.com/allisson/catalog/internal/metrics"
)

// productUseCase implements ProductUseCase.
type productUseCase struct {
	txManager    database.TxManager
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	materialRepo MaterialRepository
	statsRepo    StatisticsRepository
	codec        cryptoService.SKUCodec
	skus         *skuScanner
}

// Create validates references, rejects duplicate SKUs and stores the product,
// its materials and media in one transaction.
func (p *productUseCase) Create(
	ctx context.Context,
	input *catalogDomain.CreateProductInput,
) (*catalogDomain.Product, error) {
	if err := p.checkReferences(ctx, &input.CategoryID, input.MaterialIDs); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = catalogDomain.StatusActive
	}

	product := &catalogDomain.Product{
		SKU:         input.SKU,
		Name:        input.Name,
		CategoryID:  input.CategoryID,
		MaterialIDs: uniqueIDs(input.MaterialIDs),
		Price:       input.Price,
		Status:      status,
	}

	err := p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := p.skus.ensureUnique(txCtx, product.SKU, 0); err != nil {
			return err
		}

		encrypted, err := p.codec.Encode(product.SKU)
		if err != nil {
			return err
		}
		product.EncryptedSKU = encrypted

		if err := p.productRepo.Create(txCtx, product); err != nil {
			return err
		}
		if err := p.productRepo.ReplaceMaterials(txCtx, product.ID, product.MaterialIDs); err != nil {
			return err
		}
		if len(input.Media) > 0 {
			return p.productRepo.ReplaceMedia(txCtx, product.ID, input.Media)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.Get(ctx, product.ID)
}

// Get loads a product and decrypts its SKU.
func (p *productUseCase) Get(ctx context.Context, productID int64) (*catalogDomain.Product, error) {
	product, err := p.productRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.SKU, err = p.skus.decode(ctx, product.ID, product.EncryptedSKU)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// List returns one page of products. A SKU filter is resolved by scanning
// decrypted SKUs into an id restriction before the query runs.
func (p *productUseCase) List(
	ctx context.Context,
	filter catalogDomain.ProductFilter,
	page, limit int,
) (*catalogDomain.ProductPage, error) {
	filter.ProductIDs = nil
	if filter.SKU != "" {
		ids, err := p.skus.match(ctx, filter.SKU)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return catalogDomain.NewProductPage(nil, 0, page, limit), nil
		}
		filter.ProductIDs = ids
	}

	total, err := p.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	products, err := p.productRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	for _, product := range products {
		product.SKU, err = p.skus.decode(ctx, product.ID, product.EncryptedSKU)
		if err != nil {
			return nil, err
		}
	}

	return catalogDomain.NewProductPage(products, total, page, limit), nil
}

// Update applies the provided fields. The SKU uniqueness scan only runs when
// the SKU actually changes.
func (p *productUseCase) Update(
	ctx context.Context,
	productID int64,
	input *catalogDomain.UpdateProductInput,
) (*catalogDomain.Product, error) {
	product, err := p.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.checkReferences(ctx, input.CategoryID, input.MaterialIDs); err != nil {
		return nil, err
	}

	skuChanged := input.SKU != nil && *input.SKU != product.SKU
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	err = p.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if skuChanged {
			if err := p.skus.ensureUnique(txCtx, *input.SKU, product.ID); err != nil {
				return err
			}
			encrypted, err := p.codec.Encode(*input.SKU)
			if err != nil {
				return err
			}
			product.SKU = *input.SKU
			product.EncryptedSKU = encrypted
		}

		if err := p.productRepo.Update(txCtx, product); err != nil {
			return err
		}
		if input.MaterialIDs != nil {
			if err := p.productRepo.ReplaceMaterials(txCtx, product.ID, uniqueIDs(input.MaterialIDs)); err != nil {
				return err
			}
		}
		if input.Media != nil {
			return p.productRepo.ReplaceMedia(txCtx, product.ID, input.Media)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p.Get(ctx, product.ID)
}

// Delete removes a product.
func (p *productUseCase) Delete(ctx context.Context, productID int64) error {
	return p.productRepo.Delete(ctx, productID)
}

// Statistics gathers the catalog aggregates. SKUs of products without media
// are decrypted before being returned.
func (p *productUseCase) Statistics(ctx context.Context) (*catalogDomain.Statistics, error) {
	highest, err := p.statsRepo.CategoryHighestPrices(ctx)
	if err != nil {
		return nil, err
	}

	ranges, err := p.statsRepo.PriceRangeCounts(ctx)
	if err != nil {
		return nil, err
	}

	withoutMedia, err := p.statsRepo.ProductsWithoutMedia(ctx)
	if err != nil {
		return nil, err
	}
	for i := range withoutMedia {
		withoutMedia[i].SKU, err = p.skus.decode(ctx, withoutMedia[i].ID, withoutMedia[i].EncryptedSKU)
		if err != nil {
			return nil, err
		}
	}

	return &catalogDomain.Statistics{
		CategoryHighestPrice: highest,
		PriceRangeCount:      ranges,
		ProductsWithNoMedia:  withoutMedia,
	}, nil
}

// checkReferences verifies that the category and every material exist.
// A nil categoryID or nil materialIDs skips the respective check.
func (p *productUseCase) checkReferences(ctx context.Context, categoryID *int64, materialIDs []int64) error {
	if categoryID != nil {
		exists, err := p.categoryRepo.Exists(ctx, *categoryID)
		if err != nil {
			return err
		}
		if !exists {
			return catalogDomain.ErrCategoryNotFound
		}
	}

	if materialIDs != nil {
		ids := uniqueIDs(materialIDs)
		found, err := p.materialRepo.CountExisting(ctx, ids)
		if err != nil {
			return err
		}
		if found != len(ids) {
			return catalogDomain.ErrMaterialNotFound
		}
	}
	return nil
}

// uniqueIDs returns the sorted distinct ids.
func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// NewProductUseCase creates a new ProductUseCase. A nil codec yields a use case
// whose every SKU operation fails with a configuration error.
func NewProductUseCase(
	txManager database.TxManager,
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	materialRepo MaterialRepository,
	statsRepo StatisticsRepository,
	codec cryptoService.SKUCodec,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) ProductUseCase {
	if codec == nil {
		codec = (*cryptoService.AEADSKUCodec)(nil)
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &productUseCase{
		txManager:    txManager,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		materialRepo: materialRepo,
		statsRepo:    statsRepo,
		codec:        codec,
		skus: &skuScanner{
			productRepo: productRepo,
			codec:       codec,
			metrics:     businessMetrics,
			logger:      logger,
		},
	}
}
