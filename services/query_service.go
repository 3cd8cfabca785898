package services

import (
	"cmp"
	"slices"
	"strings"

	"techshop/models"
	"techshop/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// QueryProducts filters and orders products according to spec. The input slice is not modified.
func QueryProducts(products []models.Product, spec models.QuerySpec) []models.Product {
	spec = spec.Normalize()
	result := FilterProducts(products, spec)
	SortProducts(result, spec.Sort)
	return result
}

// RunQuery wraps QueryProducts with the count and active filter summary.
func RunQuery(products []models.Product, spec models.QuerySpec) models.QueryResult {
	spec = spec.Normalize()
	result := QueryProducts(products, spec)
	return models.QueryResult{
		Spec:          spec,
		Products:      result,
		Total:         len(result),
		ActiveFilters: spec.ActiveFilters(),
	}
}

// FilterProducts returns the products matching every filter in spec, in their original order.
func FilterProducts(products []models.Product, spec models.QuerySpec) []models.Product {
	spec = spec.Normalize()
	term := strings.ToLower(strings.TrimSpace(spec.Search))
	minPrice, hasMin := utils.ParseLeadingInt(spec.MinPrice)
	maxPrice, hasMax := utils.ParseLeadingInt(spec.MaxPrice)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if spec.Category != models.FilterAll && p.Category != spec.Category {
			continue
		}
		if spec.Brand != models.FilterAll && p.Brand != spec.Brand {
			continue
		}
		price := p.EffectivePrice()
		if hasMin && price < float64(minPrice) {
			continue
		}
		if hasMax && price > float64(maxPrice) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p models.Product, term string) bool {
	for _, field := range []string{p.Name, p.Category, p.Specs, p.Brand} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// SortProducts orders products in place with a stable sort; ties keep their relative order.
func SortProducts(products []models.Product, sortKey string) {
	var compare func(a, b models.Product) int

	switch sortKey {
	case models.SortPriceLow:
		compare = func(a, b models.Product) int {
			return cmp.Compare(a.EffectivePrice(), b.EffectivePrice())
		}
	case models.SortPriceHigh:
		compare = func(a, b models.Product) int {
			return cmp.Compare(b.EffectivePrice(), a.EffectivePrice())
		}
	case models.SortRating:
		compare = func(a, b models.Product) int {
			return cmp.Compare(b.RatingValue(), a.RatingValue())
		}
	case models.SortDiscount:
		compare = func(a, b models.Product) int {
			return cmp.Compare(b.DiscountPercent(), a.DiscountPercent())
		}
	default:
		// collators keep internal buffers, so each sort gets its own
		collator := collate.New(language.English)
		compare = func(a, b models.Product) int {
			return collator.CompareString(a.Name, b.Name)
		}
	}

	slices.SortStableFunc(products, compare)
}
