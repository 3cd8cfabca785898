package models

const FilterAll = "All"

const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
	SortDiscount  = "discount"
)

// QuerySpec describes how the storefront grid is filtered and ordered.
// MinPrice and MaxPrice are free text; only a leading integer is honoured.
type QuerySpec struct {
	Search   string `json:"search" form:"search"`
	Category string `json:"category" form:"category"`
	Brand    string `json:"brand" form:"brand"`
	Sort     string `json:"sort" form:"sort"`
	MinPrice string `json:"min_price" form:"min_price"`
	MaxPrice string `json:"max_price" form:"max_price"`
}

// DefaultQuerySpec matches everything and sorts by name.
func DefaultQuerySpec() QuerySpec {
	return QuerySpec{Category: FilterAll, Brand: FilterAll, Sort: SortName}
}

// Normalize fills blank category, brand and sort with their defaults.
func (s QuerySpec) Normalize() QuerySpec {
	if s.Category == "" {
		s.Category = FilterAll
	}
	if s.Brand == "" {
		s.Brand = FilterAll
	}
	switch s.Sort {
	case SortName, SortPriceLow, SortPriceHigh, SortRating, SortDiscount:
	default:
		s.Sort = SortName
	}
	return s
}

// ActiveFilters counts category, brand and price range filters that are set.
func (s QuerySpec) ActiveFilters() int {
	n := 0
	if s.Category != "" && s.Category != FilterAll {
		n++
	}
	if s.Brand != "" && s.Brand != FilterAll {
		n++
	}
	if s.MinPrice != "" || s.MaxPrice != "" {
		n++
	}
	return n
}

type QueryResult struct {
	Spec          QuerySpec `json:"spec"`
	Products      []Product `json:"products"`
	Total         int       `json:"total"`
	ActiveFilters int       `json:"active_filters"`
}
