package services

import (
	"errors"
	"reflect"
	"strings"

	"techshop/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

var fieldMessages = map[string]map[string]string{
	"name":     {"required": "Product name is required", "notblank": "Product name is required"},
	"category": {"required": "Category is required", "notblank": "Category is required"},
	"price":    {"required": "Price is required", "gte": "Price must be 0 or more"},
}

// ValidateProductInput checks the add/edit product form. It returns *ValidationError on failure.
func ValidateProductInput(input models.ProductInput) error {
	fields := map[string]string{}

	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			msg := fieldMessages[fe.Field()][fe.Tag()]
			if msg == "" {
				msg = "Invalid value"
			}
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = msg
			}
		}
	}

	if d := input.DiscountPrice; d != nil {
		switch {
		case *d < 0:
			fields["discountPrice"] = "Discount price must be 0 or more"
		case input.Price != nil && *d > *input.Price:
			fields["discountPrice"] = "Discount price cannot exceed price"
		}
	}
	if r := input.Rating; r != nil && (*r < 1 || *r > 5) {
		fields["rating"] = "Rating must be between 1 and 5"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ValidateProduct applies the form rules to a complete product.
func ValidateProduct(p models.Product) error {
	price := p.Price
	inStock := p.InStock
	return ValidateProductInput(models.ProductInput{
		Name:          p.Name,
		Category:      p.Category,
		Brand:         p.Brand,
		Price:         &price,
		DiscountPrice: p.DiscountPrice,
		Image:         p.Image,
		Specs:         p.Specs,
		Rating:        p.Rating,
		InStock:       &inStock,
	})
}

// ValidatePatch checks the merged product but reports only the fields patch sets. The
// discount rule is re-checked when either the price or the discount changes. Stored values
// the patch leaves alone, such as an imported rating of 9, do not block the update.
func ValidatePatch(updated models.Product, patch models.ProductPatch) error {
	err := ValidateProduct(updated)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}

	touched := map[string]bool{
		"name":          patch.Name != nil,
		"category":      patch.Category != nil,
		"price":         patch.Price != nil,
		"discountPrice": patch.DiscountPrice != nil || patch.Price != nil,
		"rating":        patch.Rating != nil,
	}
	fields := map[string]string{}
	for field, msg := range verr.Fields {
		if touched[field] {
			fields[field] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
