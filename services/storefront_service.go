package services

import (
	"slices"

	"techshop/models"
)

// ProductSource supplies the product list the storefront queries.
type ProductSource interface {
	Products() []models.Product
}

// Storefront shows the admin catalog, or the fallback list while the catalog is empty.
type Storefront struct {
	catalog  *CatalogService
	fallback []models.Product
}

func NewStorefront(catalog *CatalogService, fallback []models.Product) *Storefront {
	return &Storefront{catalog: catalog, fallback: fallback}
}

func (s *Storefront) Products() []models.Product {
	if products := s.catalog.Products(); len(products) > 0 {
		return products
	}
	return slices.Clone(s.fallback)
}

func (s *Storefront) Product(id int64) (models.Product, bool) {
	for _, p := range s.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// UsingFallback reports whether the catalog is empty and the fallback list is shown.
func (s *Storefront) UsingFallback() bool {
	return s.catalog.Len() == 0
}

// Version changes whenever the visible product list may have changed.
func (s *Storefront) Version() uint64 {
	return s.catalog.Version()
}

// Categories lists the suggested categories followed by any custom ones in use.
func (s *Storefront) Categories() []string {
	return mergeOptions(models.SuggestedCategories, s.Products(), func(p models.Product) string { return p.Category })
}

// Brands lists the suggested brands followed by any other brands in use.
func (s *Storefront) Brands() []string {
	return mergeOptions(models.SuggestedBrands, s.Products(), func(p models.Product) string { return p.Brand })
}

func mergeOptions(suggested []string, products []models.Product, field func(models.Product) string) []string {
	options := append([]string{models.FilterAll}, suggested...)
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		seen[o] = true
	}

	var extra []string
	for _, p := range products {
		v := field(p)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		extra = append(extra, v)
	}
	slices.Sort(extra)
	return append(options, extra...)
}
