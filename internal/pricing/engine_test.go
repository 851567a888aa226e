package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func product(category enums.ProductCategory, basePrice string) *models.Product {
	return &models.Product{
		Name:      "test product",
		Category:  category,
		BasePrice: dec(basePrice),
		IsActive:  true,
	}
}

func material(multiplier string) *models.Material {
	return &models.Material{Name: "test material", PriceMultiplier: dec(multiplier), IsActive: true}
}

func finishing(price string) *models.Finishing {
	return &models.Finishing{Name: "test finishing", AdditionalPrice: dec(price), IsActive: true}
}

func TestComputeBannerByArea(t *testing.T) {
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryBanner, "20000"),
		Width:    decPtr("300"),
		Height:   decPtr("100"),
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("60000")), "subtotal %s", got.Subtotal)
	assert.True(t, got.MaterialCost.Equal(dec("60000")))
	assert.True(t, got.UrgentFee.IsZero())
	assert.True(t, got.TotalPrice.Equal(dec("60000")))
}

func TestComputeBannerMinimumArea(t *testing.T) {
	// 50x50 cm is 0.25 m², billed as the 1 m² minimum.
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryBanner, "20000"),
		Width:    decPtr("50"),
		Height:   decPtr("50"),
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec("20000")), "subtotal %s", got.Subtotal)
}

func TestComputeBannerExactMinimum(t *testing.T) {
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryBanner, "20000"),
		Width:    decPtr("200"),
		Height:   decPtr("50"),
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec("20000")))
}

func TestComputeBannerMissingDimensions(t *testing.T) {
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryBanner, "20000"),
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec("40000")))
}

func TestComputeStickerByArea(t *testing.T) {
	// base 25000 per 0.15 m² sheet, 30x20 cm = 0.06 m² → 10000.
	got, err := Compute(Input{
		Product:  product(enums.ProductCategorySticker, "25000"),
		Width:    decPtr("30"),
		Height:   decPtr("20"),
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec("10000")), "subtotal %s", got.Subtotal)
}

func TestComputeStickerPerSheet(t *testing.T) {
	got, err := Compute(Input{
		Product:  product(enums.ProductCategorySticker, "25000"),
		Quantity: 3,
	})
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec("75000")))
}

func TestComputeStandardIgnoresDimensions(t *testing.T) {
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryStandard, "30000"),
		Width:    decPtr("900"),
		Height:   decPtr("900"),
		Quantity: 2,
	})
	require.NoError(t, err)
	assert.True(t, got.Subtotal.Equal(dec("60000")))
}

func TestComputeMaterialMultiplierAndFinishing(t *testing.T) {
	got, err := Compute(Input{
		Product:   product(enums.ProductCategoryStandard, "30000"),
		Material:  material("1.2"),
		Finishing: finishing("5000"),
		Quantity:  2,
	})
	require.NoError(t, err)

	// unit = 30000*1.2 + 5000 = 41000
	assert.True(t, got.Subtotal.Equal(dec("82000")))
	assert.True(t, got.MaterialCost.Equal(dec("72000")))
	assert.True(t, got.FinishingCost.Equal(dec("10000")))
	assert.True(t, got.TotalPrice.Equal(dec("82000")))
}

func TestComputeUrgentFee(t *testing.T) {
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryBanner, "20000"),
		Width:    decPtr("200"),
		Height:   decPtr("50"),
		Quantity: 1,
		IsUrgent: true,
	})
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("20000")))
	assert.True(t, got.UrgentFee.Equal(dec("6000")), "urgent fee %s", got.UrgentFee)
	assert.True(t, got.TotalPrice.Equal(dec("26000")))
	assert.True(t, got.IsUrgent)
}

func TestComputeUrgentFeeRoundsHalfUp(t *testing.T) {
	// subtotal 1875 → fee 562.5 → rounds to 563.
	got, err := Compute(Input{
		Product:  product(enums.ProductCategoryStandard, "625"),
		Quantity: 3,
		IsUrgent: true,
	})
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("1875")))
	assert.True(t, got.UrgentFee.Equal(dec("563")), "urgent fee %s", got.UrgentFee)
	assert.True(t, got.TotalPrice.Equal(dec("2438")))
}

func TestComputeAggregatesRoundIndependently(t *testing.T) {
	// material 333.5/unit, finishing 111.5/unit, qty 1:
	// subtotal round(445) = 445, material round(333.5) = 334,
	// finishing round(111.5) = 112. The parts may exceed the subtotal.
	got, err := Compute(Input{
		Product:   product(enums.ProductCategoryStandard, "333.5"),
		Finishing: finishing("111.5"),
		Quantity:  1,
	})
	require.NoError(t, err)

	assert.True(t, got.Subtotal.Equal(dec("445")))
	assert.True(t, got.MaterialCost.Equal(dec("334")))
	assert.True(t, got.FinishingCost.Equal(dec("112")))
	assert.True(t, got.TotalPrice.Equal(got.Subtotal))
}

func TestComputeDeterministic(t *testing.T) {
	in := Input{
		Product:   product(enums.ProductCategorySticker, "25000"),
		Material:  material("1.3"),
		Finishing: finishing("2000"),
		Width:     decPtr("33"),
		Height:    decPtr("21"),
		Quantity:  7,
		IsUrgent:  true,
	}

	first, err := Compute(in)
	require.NoError(t, err)
	second, err := Compute(in)
	require.NoError(t, err)

	assert.True(t, first.TotalPrice.Equal(second.TotalPrice))
	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.UrgentFee.Equal(second.UrgentFee))
}

func TestComputeValidation(t *testing.T) {
	base := func() Input {
		return Input{Product: product(enums.ProductCategoryStandard, "30000"), Quantity: 1}
	}

	t.Run("missing product", func(t *testing.T) {
		in := base()
		in.Product = nil
		_, err := Compute(in)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("inactive product", func(t *testing.T) {
		in := base()
		in.Product.IsActive = false
		_, err := Compute(in)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("zero quantity", func(t *testing.T) {
		in := base()
		in.Quantity = 0
		_, err := Compute(in)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("negative width", func(t *testing.T) {
		in := base()
		in.Width = decPtr("-10")
		_, err := Compute(in)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})
}
