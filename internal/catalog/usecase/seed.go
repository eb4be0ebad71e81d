package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
	"github.com/allisson/catalog/internal/database"
)

// SeedResult reports what Seed inserted.
type SeedResult struct {
	Skipped    bool
	Categories int
	Materials  int
	Products   int
}

type sampleProduct struct {
	sku       string
	name      string
	category  int
	materials []int
	price     int64
	mediaURLs []string
}

var (
	sampleCategories = []string{"category1", "category2", "category3"}
	sampleMaterials  = []string{"Material1", "Material2", "Material3"}
	sampleProducts   = []sampleProduct{
		{"f2821c0c88c19a99918d443", "Product1", 0, []int{0, 1}, 1000, []string{"https://xyz/a.png"}},
		{"f2821c0c88c19a99918d444", "Product2", 1, []int{0}, 2000, []string{"https://xyz/a.png", "https://xyz/a.png"}},
		{"f2821c0c88c19a99918d445", "Product3", 2, []int{1}, 3000, []string{"https://xyz/a.png"}},
		{"f2821c0c88c19a99918d446", "Product4", 0, []int{1}, 4000, nil},
		{"f2821c0c88c19a99918d447", "Product5", 0, []int{2}, 5000, nil},
	}
)

// Seeder loads the sample catalog into an empty database.
type Seeder struct {
	txManager      database.TxManager
	categoryRepo   CategoryRepository
	materialRepo   MaterialRepository
	productUseCase ProductUseCase
}

// NewSeeder creates a Seeder. Products go through productUseCase so their SKUs
// are encrypted exactly like API writes.
func NewSeeder(
	txManager database.TxManager,
	categoryRepo CategoryRepository,
	materialRepo MaterialRepository,
	productUseCase ProductUseCase,
) *Seeder {
	return &Seeder{
		txManager:      txManager,
		categoryRepo:   categoryRepo,
		materialRepo:   materialRepo,
		productUseCase: productUseCase,
	}
}

// Seed inserts sample categories, materials and products unless categories already exist.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}
	categories := make([]*catalogDomain.Category, 0, len(sampleCategories))
	materials := make([]*catalogDomain.Material, 0, len(sampleMaterials))

	err = s.txManager.WithTx(ctx, func(txCtx context.Context) error {
		for _, name := range sampleCategories {
			category := &catalogDomain.Category{Name: name}
			if err := s.categoryRepo.Create(txCtx, category); err != nil {
				return err
			}
			categories = append(categories, category)
		}
		for _, name := range sampleMaterials {
			material := &catalogDomain.Material{Name: name}
			if err := s.materialRepo.Create(txCtx, material); err != nil {
				return err
			}
			materials = append(materials, material)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Categories = len(categories)
	result.Materials = len(materials)

	for _, sample := range sampleProducts {
		materialIDs := make([]int64, 0, len(sample.materials))
		for _, idx := range sample.materials {
			materialIDs = append(materialIDs, materials[idx].ID)
		}

		_, err := s.productUseCase.Create(ctx, &catalogDomain.CreateProductInput{
			SKU:         sample.sku,
			Name:        sample.name,
			CategoryID:  categories[sample.category].ID,
			MaterialIDs: materialIDs,
			Price:       decimal.NewFromInt(sample.price),
			Status:      catalogDomain.StatusActive,
			Media:       sample.mediaURLs,
		})
		if err != nil {
			return result, err
		}
		result.Products++
	}

	return result, nil
}
