// Package pricing computes price breakdowns for print jobs. The engine is
// pure: it never touches storage and always produces the same breakdown for
// the same inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

var urgentFeeRate = decimal.RequireFromString("0.30")

// Input carries the resolved catalog entities and job parameters for one
// price computation. Material and Finishing are optional.
type Input struct {
	Product   *models.Product
	Material  *models.Material
	Finishing *models.Finishing
	Width     *decimal.Decimal
	Height    *decimal.Decimal
	Quantity  int
	IsUrgent  bool
}

// Breakdown is the computed price, every aggregate rounded to whole currency
// units at the point it is produced. MaterialCost + FinishingCost may differ
// from Subtotal by rounding; Subtotal + UrgentFee always equals TotalPrice.
type Breakdown struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	MaterialCost  decimal.Decimal `json:"material_cost"`
	FinishingCost decimal.Decimal `json:"finishing_cost"`
	UrgentFee     decimal.Decimal `json:"urgent_fee"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	IsUrgent      bool            `json:"is_urgent"`
}

// Compute prices a job from catalog data. It fails with a validation error
// when the quantity is below one, the product is missing or inactive, or a
// supplied dimension is negative.
func Compute(in Input) (*Breakdown, error) {
	if in.Product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is required")
	}
	if !in.Product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	if in.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if err := validateDimension("width", in.Width); err != nil {
		return nil, err
	}
	if err := validateDimension("height", in.Height); err != nil {
		return nil, err
	}

	multiplier := decimal.NewFromInt(1)
	if in.Material != nil {
		multiplier = in.Material.PriceMultiplier
	}

	finishingPerUnit := decimal.Zero
	if in.Finishing != nil {
		finishingPerUnit = in.Finishing.AdditionalPrice
	}

	materialPerUnit := strategyFor(in.Product).
		unitMaterialPrice(in.Product.BasePrice, multiplier, in.Width, in.Height)

	qty := decimal.NewFromInt(int64(in.Quantity))
	unitPrice := materialPerUnit.Add(finishingPerUnit)

	subtotal := unitPrice.Mul(qty).Round(0)
	materialCost := materialPerUnit.Mul(qty).Round(0)
	finishingCost := finishingPerUnit.Mul(qty).Round(0)

	urgentFee := decimal.Zero
	if in.IsUrgent {
		urgentFee = subtotal.Mul(urgentFeeRate).Round(0)
	}

	return &Breakdown{
		Subtotal:      subtotal,
		MaterialCost:  materialCost,
		FinishingCost: finishingCost,
		UrgentFee:     urgentFee,
		TotalPrice:    subtotal.Add(urgentFee),
		IsUrgent:      in.IsUrgent,
	}, nil
}

func validateDimension(field string, value *decimal.Decimal) error {
	if value == nil {
		return nil
	}
	if value.IsNegative() {
		return pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			field: {"must be zero or greater"},
		})
	}
	return nil
}
