package models

// Product is a catalog entry. JSON names follow the stored record format.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Brand         string   `json:"brand,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Image         string   `json:"image"`
	Specs         string   `json:"specs"`
	Rating        *float64 `json:"rating,omitempty"`
	InStock       bool     `json:"inStock"`
}

// HasValidDiscount reports whether DiscountPrice is set, positive and not above Price.
func (p Product) HasValidDiscount() bool {
	return p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice <= p.Price
}

// EffectivePrice is the discount price when valid, otherwise the base price.
func (p Product) EffectivePrice() float64 {
	if p.HasValidDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercent returns (price - discountPrice) / price * 100, or 0 without a valid discount.
func (p Product) DiscountPercent() float64 {
	if !p.HasValidDiscount() {
		return 0
	}
	return (p.Price - *p.DiscountPrice) / p.Price * 100
}

// RatingValue treats a missing rating as 0.
func (p Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

type ProductStats struct {
	TotalProducts int            `json:"total_products"`
	InStock       int            `json:"in_stock"`
	OutOfStock    int            `json:"out_of_stock"`
	TotalValue    float64        `json:"total_value"`
	Categories    map[string]int `json:"categories"`
	Brands        map[string]int `json:"brands"`
}

func Float64(v float64) *float64 {
	return &v
}
