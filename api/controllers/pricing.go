package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajarnugraha/cetakin-backend/api/responses"
	"github.com/fajarnugraha/cetakin-backend/api/validators"
	ordersvc "github.com/fajarnugraha/cetakin-backend/internal/orders"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
	"github.com/fajarnugraha/cetakin-backend/pkg/logger"
)

type calculatePriceRequest struct {
	ProductID   string           `json:"product_id" validate:"required,uuid"`
	Width       *decimal.Decimal `json:"width"`
	Height      *decimal.Decimal `json:"height"`
	Quantity    int              `json:"quantity" validate:"required,min=1"`
	MaterialID  *string          `json:"material_id" validate:"omitempty,uuid"`
	FinishingID *string          `json:"finishing_id" validate:"omitempty,uuid"`
	IsUrgent    bool             `json:"is_urgent"`
}

// CalculatePrice quotes a job without persisting anything.
func CalculatePrice(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload calculatePriceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req, err := payload.toPriceRequest()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.CalculatePrice(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "", breakdown)
	}
}

func (p calculatePriceRequest) toPriceRequest() (ordersvc.PriceRequest, error) {
	productID, err := uuid.Parse(p.ProductID)
	if err != nil {
		return ordersvc.PriceRequest{}, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
			"product_id": {"must be a valid id"},
		})
	}

	req := ordersvc.PriceRequest{
		ProductID: productID,
		Width:     p.Width,
		Height:    p.Height,
		Quantity:  p.Quantity,
		IsUrgent:  p.IsUrgent,
	}

	if p.MaterialID != nil {
		id, err := uuid.Parse(*p.MaterialID)
		if err != nil {
			return ordersvc.PriceRequest{}, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"material_id": {"must be a valid id"},
			})
		}
		req.MaterialID = &id
	}
	if p.FinishingID != nil {
		id, err := uuid.Parse(*p.FinishingID)
		if err != nil {
			return ordersvc.PriceRequest{}, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"finishing_id": {"must be a valid id"},
			})
		}
		req.FinishingID = &id
	}

	return req, nil
}
