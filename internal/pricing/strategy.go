package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
)

var (
	cmSqPerMeterSq = decimal.NewFromInt(10000)
	minBillableM2  = decimal.NewFromInt(1)
	// Sticker base prices are quoted per reference sheet of 0.15 m²
	// (roughly A3+); dimensioned sticker jobs derive a per-m² rate from it.
	stickerSheetM2 = decimal.RequireFromString("0.15")
)

// strategy computes the per-unit material price for one product category.
type strategy interface {
	unitMaterialPrice(basePrice, multiplier decimal.Decimal, width, height *decimal.Decimal) decimal.Decimal
}

var strategies = map[enums.ProductCategory]strategy{
	enums.ProductCategoryBanner:   bannerStrategy{},
	enums.ProductCategorySticker:  stickerStrategy{},
	enums.ProductCategoryStandard: standardStrategy{},
}

func strategyFor(product *models.Product) strategy {
	if s, ok := strategies[product.Category]; ok {
		return s
	}
	return standardStrategy{}
}

// bannerStrategy prices per square meter with a minimum billable area of
// 1 m². Missing dimensions fall back to exactly 1 m².
type bannerStrategy struct{}

func (bannerStrategy) unitMaterialPrice(basePrice, multiplier decimal.Decimal, width, height *decimal.Decimal) decimal.Decimal {
	area := minBillableM2
	if width != nil && height != nil {
		area = width.Mul(*height).Div(cmSqPerMeterSq)
		if area.LessThan(minBillableM2) {
			area = minBillableM2
		}
	}
	return basePrice.Mul(multiplier).Mul(area)
}

// stickerStrategy prices dimensioned jobs against a per-m² rate derived from
// the reference sheet price; jobs without dimensions are billed per sheet.
type stickerStrategy struct{}

func (stickerStrategy) unitMaterialPrice(basePrice, multiplier decimal.Decimal, width, height *decimal.Decimal) decimal.Decimal {
	if width == nil || height == nil {
		return basePrice.Mul(multiplier)
	}
	area := width.Mul(*height).Div(cmSqPerMeterSq)
	basePerM2 := basePrice.Div(stickerSheetM2)
	return basePerM2.Mul(area).Mul(multiplier)
}

// standardStrategy bills the base price per piece; dimensions are ignored.
type standardStrategy struct{}

func (standardStrategy) unitMaterialPrice(basePrice, multiplier decimal.Decimal, _, _ *decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(multiplier)
}
