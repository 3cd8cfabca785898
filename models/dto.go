package models

// ProductInput is the admin add-product form.
type ProductInput struct {
	Name          string   `json:"name" form:"name" validate:"required,notblank"`
	Category      string   `json:"category" form:"category" validate:"required,notblank"`
	Brand         string   `json:"brand" form:"brand"`
	Price         *float64 `json:"price" form:"price" validate:"required,gte=0"`
	DiscountPrice *float64 `json:"discountPrice" form:"discountPrice"`
	Image         string   `json:"image" form:"image"`
	Specs         string   `json:"specs" form:"specs"`
	Rating        *float64 `json:"rating" form:"rating"`
	InStock       *bool    `json:"inStock" form:"inStock"`
}

// ProductPatch holds the fields of a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	ClearDiscount bool     `json:"clearDiscount,omitempty"`
	Image         *string  `json:"image,omitempty"`
	Specs         *string  `json:"specs,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	InStock       *bool    `json:"inStock,omitempty"`
}

type BulkDeleteRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

type BulkStockRequest struct {
	IDs     []int64 `json:"ids" binding:"required,min=1"`
	InStock *bool   `json:"inStock" binding:"required"`
}

type ImportRequest struct {
	Products []Product `json:"products" binding:"required,min=1"`
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type NavigateRequest struct {
	Category string `json:"category" binding:"required"`
}

// QuerySpecPatch updates a browse session; nil fields keep their current value.
type QuerySpecPatch struct {
	Search   *string `json:"search,omitempty"`
	Category *string `json:"category,omitempty"`
	Brand    *string `json:"brand,omitempty"`
	Sort     *string `json:"sort,omitempty"`
	MinPrice *string `json:"min_price,omitempty"`
	MaxPrice *string `json:"max_price,omitempty"`
	Reset    bool    `json:"reset,omitempty"`
}
