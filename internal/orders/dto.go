package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fajarnugraha/cetakin-backend/internal/files"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
)

// CreateOrderInput carries a new order request after transport decoding.
// Any client-supplied price figures never reach this struct; the service
// recomputes the full breakdown from catalog data.
type CreateOrderInput struct {
	ProductID     uuid.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Width         *decimal.Decimal
	Height        *decimal.Decimal
	Quantity      int
	MaterialID    *uuid.UUID
	FinishingID   *uuid.UUID
	IsUrgent      bool
	DeadlineDate  *time.Time
	CustomerNotes *string
	DesignFiles   []files.Upload
}

// PriceRequest is a standalone quote request.
type PriceRequest struct {
	ProductID   uuid.UUID
	Width       *decimal.Decimal
	Height      *decimal.Decimal
	Quantity    int
	MaterialID  *uuid.UUID
	FinishingID *uuid.UUID
	IsUrgent    bool
}

// ListFilters narrows the order listing. Zero values mean no filter.
type ListFilters struct {
	CustomerPhone string
	Status        *enums.OrderStatus
}
