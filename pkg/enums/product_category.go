package enums

import "fmt"

// ProductCategory selects the pricing strategy for a product. Legacy data
// dispatched on substring matches against the product name; the category is
// now an explicit column.
type ProductCategory string

const (
	ProductCategoryBanner   ProductCategory = "banner"
	ProductCategorySticker  ProductCategory = "sticker"
	ProductCategoryStandard ProductCategory = "standard"
)

var validProductCategories = []ProductCategory{
	ProductCategoryBanner,
	ProductCategorySticker,
	ProductCategoryStandard,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts a raw string into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
