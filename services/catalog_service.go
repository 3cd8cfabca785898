package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"techshop/models"
	"techshop/repositories"
	"techshop/utils"
)

// CatalogChangeFunc is called after every committed catalog mutation.
type CatalogChangeFunc func(ctx context.Context, version uint64)

// CatalogService owns the admin-managed product list and mirrors it to its repository.
type CatalogService struct {
	mu       sync.RWMutex
	repo     *repositories.ListRepository[models.Product]
	products []models.Product
	ids      *utils.IDGenerator
	version  uint64
	onChange []CatalogChangeFunc
}

// NewCatalogService loads the persisted catalog. Unreadable records start an empty catalog.
func NewCatalogService(ctx context.Context, repo *repositories.ListRepository[models.Product]) *CatalogService {
	products := repo.Load(ctx)

	ids := utils.NewIDGenerator(time.Now().UnixMilli())
	for _, p := range products {
		ids.Observe(p.ID)
	}

	return &CatalogService{
		repo:     repo,
		products: products,
		ids:      ids,
	}
}

// OnChange registers fn to run after each successful mutation. fn runs under the catalog lock
// and must not call back into the service.
func (s *CatalogService) OnChange(fn CatalogChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// commit persists next and, only if the write succeeds, makes it the live catalog.
// Callers hold s.mu.
func (s *CatalogService) commit(ctx context.Context, next []models.Product) error {
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.products = next
	s.version++
	for _, fn := range s.onChange {
		fn(ctx, s.version)
	}
	return nil
}

func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

func (s *CatalogService) Product(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *CatalogService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *CatalogService) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// AddProduct validates the form, assigns a fresh id and appends the product.
func (s *CatalogService) AddProduct(ctx context.Context, input models.ProductInput) (models.Product, error) {
	if err := ValidateProductInput(input); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:          strings.TrimSpace(input.Name),
		Category:      strings.TrimSpace(input.Category),
		Brand:         strings.TrimSpace(input.Brand),
		Price:         *input.Price,
		DiscountPrice: input.DiscountPrice,
		Image:         input.Image,
		Specs:         input.Specs,
		Rating:        input.Rating,
		InStock:       true,
	}
	if product.Image == "" {
		product.Image = models.PlaceholderImage
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = s.ids.Next()
	next := append(slices.Clone(s.products), product)
	if err := s.commit(ctx, next); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct merges the present fields of patch into the product with id.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}

	updated := applyPatch(s.products[idx], patch)
	if err := ValidatePatch(updated, patch); err != nil {
		return models.Product{}, err
	}

	next := slices.Clone(s.products)
	next[idx] = updated
	if err := s.commit(ctx, next); err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

func applyPatch(p models.Product, patch models.ProductPatch) models.Product {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Brand != nil {
		p.Brand = strings.TrimSpace(*patch.Brand)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ClearDiscount {
		p.DiscountPrice = nil
	}
	if patch.DiscountPrice != nil {
		p.DiscountPrice = models.Float64(*patch.DiscountPrice)
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Specs != nil {
		p.Specs = *patch.Specs
	}
	if patch.Rating != nil {
		p.Rating = models.Float64(*patch.Rating)
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	return p
}

// DeleteProduct removes the product with id and reports how many entries were removed.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) (int, error) {
	return s.DeleteMultipleProducts(ctx, []int64{id})
}

func (s *CatalogService) DeleteMultipleProducts(ctx context.Context, ids []int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.products), func(p models.Product) bool {
		return slices.Contains(ids, p.ID)
	})
	removed := len(s.products) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// BulkUpdateStock sets the availability flag of every listed product.
func (s *CatalogService) BulkUpdateStock(ctx context.Context, ids []int64, inStock bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.products)
	matched := 0
	for i := range next {
		if slices.Contains(ids, next[i].ID) {
			next[i].InStock = inStock
			matched++
		}
	}
	if matched == 0 {
		return 0, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return matched, nil
}

// ImportProducts appends products to the catalog with a single write. Products without an id,
// or whose id is already taken, get a fresh one.
func (s *CatalogService) ImportProducts(ctx context.Context, products []models.Product) ([]models.Product, error) {
	if len(products) == 0 {
		return nil, ErrEmptyImport
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[int64]bool, len(s.products)+len(products))
	for _, p := range s.products {
		taken[p.ID] = true
	}

	imported := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == 0 || taken[p.ID] {
			p.ID = s.ids.Next()
		} else {
			s.ids.Observe(p.ID)
		}
		taken[p.ID] = true
		imported = append(imported, p)
	}

	next := append(slices.Clone(s.products), imported...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return imported, nil
}

// SearchAdmin filters the catalog by name, category or brand for the management table.
func (s *CatalogService) SearchAdmin(term string) []models.Product {
	products := s.Products()
	term = strings.ToLower(term)
	if term == "" {
		return products
	}

	return slices.DeleteFunc(products, func(p models.Product) bool {
		return !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) &&
			!strings.Contains(strings.ToLower(p.Brand), term)
	})
}

func (s *CatalogService) Stats() models.ProductStats {
	products := s.Products()

	stats := models.ProductStats{
		TotalProducts: len(products),
		Categories:    map[string]int{},
		Brands:        map[string]int{},
	}
	for _, p := range products {
		if p.InStock {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
		stats.TotalValue += p.EffectivePrice()
		stats.Categories[p.Category]++
		if p.Brand != "" {
			stats.Brands[p.Brand]++
		}
	}
	return stats
}
