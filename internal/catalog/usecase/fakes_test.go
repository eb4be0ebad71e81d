package usecase

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

// fakeTxManager runs fn directly.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeStore is an in-memory catalog implementing every repository interface.
type fakeStore struct {
	mu          sync.Mutex
	nextID      int64
	products    map[int64]*catalogDomain.Product
	categories  []*catalogDomain.Category
	materials   []*catalogDomain.Material
	listSKUCall int
	countCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: map[int64]*catalogDomain.Product{}}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func clone(p *catalogDomain.Product) *catalogDomain.Product {
	c := *p
	c.SKU = ""
	c.MaterialIDs = slices.Clone(p.MaterialIDs)
	c.Media = slices.Clone(p.Media)
	c.MediaCount = len(c.Media)
	return &c
}

func (f *fakeStore) Create(_ context.Context, product *catalogDomain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = f.id()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = clone(product)
	return nil
}

func (f *fakeStore) Update(_ context.Context, product *catalogDomain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.products[product.ID]
	if !ok {
		return catalogDomain.ErrProductNotFound
	}
	stored.EncryptedSKU = product.EncryptedSKU
	stored.Name = product.Name
	stored.CategoryID = product.CategoryID
	stored.Price = product.Price
	stored.Status = product.Status
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeStore) Delete(_ context.Context, productID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[productID]; !ok {
		return catalogDomain.ErrProductNotFound
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeStore) Get(_ context.Context, productID int64) (*catalogDomain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.products[productID]
	if !ok {
		return nil, catalogDomain.ErrProductNotFound
	}
	return clone(stored), nil
}

func (f *fakeStore) matching(filter catalogDomain.ProductFilter) []*catalogDomain.Product {
	var out []*catalogDomain.Product
	for _, p := range f.products {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.CategoryID != 0 && p.CategoryID != filter.CategoryID {
			continue
		}
		if filter.MaterialID != 0 && !slices.Contains(p.MaterialIDs, filter.MaterialID) {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.ProductIDs != nil && !slices.Contains(filter.ProductIDs, p.ID) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeStore) List(
	_ context.Context,
	filter catalogDomain.ProductFilter,
	offset, limit int,
) ([]*catalogDomain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.matching(filter)
	result := []*catalogDomain.Product{}
	for i := offset; i < len(all) && i < offset+limit; i++ {
		result = append(result, clone(all[i]))
	}
	return result, nil
}

func (f *fakeStore) Count(_ context.Context, filter catalogDomain.ProductFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.countCalls++
	return len(f.matching(filter)), nil
}

func (f *fakeStore) ListSKUs(_ context.Context) ([]catalogDomain.SKURecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listSKUCall++
	records := make([]catalogDomain.SKURecord, 0, len(f.products))
	for _, p := range f.products {
		records = append(records, catalogDomain.SKURecord{ProductID: p.ID, EncryptedSKU: p.EncryptedSKU})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ProductID < records[j].ProductID })
	return records, nil
}

func (f *fakeStore) ReplaceMaterials(_ context.Context, productID int64, materialIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[productID].MaterialIDs = slices.Clone(materialIDs)
	return nil
}

func (f *fakeStore) ReplaceMedia(_ context.Context, productID int64, urls []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	media := make([]catalogDomain.Media, 0, len(urls))
	for _, url := range urls {
		media = append(media, catalogDomain.Media{ID: f.id(), ProductID: productID, URL: url})
	}
	f.products[productID].Media = media
	return nil
}

// storedSKU returns the envelope persisted for a product.
func (f *fakeStore) storedSKU(productID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[productID].EncryptedSKU
}

func (f *fakeStore) corrupt(productID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[productID].EncryptedSKU = "v1:aes-gcm:AAAA"
}

// fakeCategories implements CategoryRepository on top of fakeStore.
type fakeCategories struct{ store *fakeStore }

func (f fakeCategories) Create(_ context.Context, category *catalogDomain.Category) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	category.ID = int64(len(f.store.categories) + 1)
	f.store.categories = append(f.store.categories, category)
	return nil
}

func (f fakeCategories) List(_ context.Context) ([]*catalogDomain.Category, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return slices.Clone(f.store.categories), nil
}

func (f fakeCategories) Exists(_ context.Context, categoryID int64) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return categoryID >= 1 && categoryID <= int64(len(f.store.categories)), nil
}

// fakeMaterials implements MaterialRepository on top of fakeStore.
type fakeMaterials struct{ store *fakeStore }

func (f fakeMaterials) Create(_ context.Context, material *catalogDomain.Material) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	material.ID = int64(len(f.store.materials) + 1)
	f.store.materials = append(f.store.materials, material)
	return nil
}

func (f fakeMaterials) List(_ context.Context) ([]*catalogDomain.Material, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return slices.Clone(f.store.materials), nil
}

func (f fakeMaterials) CountExisting(_ context.Context, materialIDs []int64) (int, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	found := 0
	for _, id := range materialIDs {
		if id >= 1 && id <= int64(len(f.store.materials)) {
			found++
		}
	}
	return found, nil
}

// fakeStatistics returns preset results.
type fakeStatistics struct {
	highest      []catalogDomain.CategoryPrice
	ranges       []catalogDomain.PriceRangeCount
	withoutMedia []catalogDomain.ProductSummary
	err          error
}

func (f *fakeStatistics) CategoryHighestPrices(context.Context) ([]catalogDomain.CategoryPrice, error) {
	return f.highest, f.err
}

func (f *fakeStatistics) PriceRangeCounts(context.Context) ([]catalogDomain.PriceRangeCount, error) {
	return f.ranges, f.err
}

func (f *fakeStatistics) ProductsWithoutMedia(context.Context) ([]catalogDomain.ProductSummary, error) {
	return f.withoutMedia, f.err
}
