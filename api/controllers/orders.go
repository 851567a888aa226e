package controllers

import (
	"net/http"

	"github.com/fajarnugraha/cetakin-backend/api/responses"
	"github.com/fajarnugraha/cetakin-backend/api/validators"
	ordersvc "github.com/fajarnugraha/cetakin-backend/internal/orders"
	"github.com/fajarnugraha/cetakin-backend/pkg/logger"
)

type updateStatusRequest struct {
	Status          *string `json:"status" validate:"omitempty,min=1"`
	ApprovalStatus  *string `json:"approval_status" validate:"omitempty,min=1"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,min=10"`
	AdminNotes      *string `json:"admin_notes"`
}

type rejectRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required,min=10"`
}

// CreateOrder accepts the multipart order form, prices it from catalog data
// and persists it together with any design uploads.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := validators.DecodeCreateOrderForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrder(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := "Order created successfully"
		if len(order.FileWarnings) > 0 {
			message = "Order created, but some design files could not be stored"
		}
		responses.WriteCreated(w, message, order)
	}
}

func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := validators.ParseStatusFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListOrders(r.Context(), ordersvc.ListFilters{
			CustomerPhone: validators.QueryString(r, "customer_phone"),
			Status:        status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "", orders)
	}
}

func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "", order)
	}
}

func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, ordersvc.TransitionRequest{
			Status:          payload.Status,
			ApprovalStatus:  payload.ApprovalStatus,
			RejectionReason: payload.RejectionReason,
			AdminNotes:      payload.AdminNotes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Order updated successfully", order)
	}
}

func ApproveOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Approve(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order approved", order)
	}
}

func RejectOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rejectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Reject(r.Context(), id, payload.RejectionReason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Order rejected", order)
	}
}
