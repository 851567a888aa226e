package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
)

// Order is a customer print order. Price fields are always server-computed;
// the Version column backs compare-and-set status updates.
type Order struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNumber     string               `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	ProductID       uuid.UUID            `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	CustomerName    string               `gorm:"column:customer_name;not null" json:"customer_name"`
	CustomerPhone   string               `gorm:"column:customer_phone;not null;index" json:"customer_phone"`
	CustomerEmail   *string              `gorm:"column:customer_email" json:"customer_email,omitempty"`
	Width           *decimal.Decimal     `gorm:"column:width;type:numeric(10,2)" json:"width,omitempty"`
	Height          *decimal.Decimal     `gorm:"column:height;type:numeric(10,2)" json:"height,omitempty"`
	Quantity        int                  `gorm:"column:quantity;not null;default:1" json:"quantity"`
	MaterialID      *uuid.UUID           `gorm:"column:material_id;type:uuid" json:"material_id,omitempty"`
	FinishingID     *uuid.UUID           `gorm:"column:finishing_id;type:uuid" json:"finishing_id,omitempty"`
	Subtotal        decimal.Decimal      `gorm:"column:subtotal;type:numeric(14,2);not null" json:"subtotal"`
	MaterialCost    decimal.Decimal      `gorm:"column:material_cost;type:numeric(14,2);not null;default:0" json:"material_cost"`
	FinishingCost   decimal.Decimal      `gorm:"column:finishing_cost;type:numeric(14,2);not null;default:0" json:"finishing_cost"`
	UrgentFee       decimal.Decimal      `gorm:"column:urgent_fee;type:numeric(14,2);not null;default:0" json:"urgent_fee"`
	TotalPrice      decimal.Decimal      `gorm:"column:total_price;type:numeric(14,2);not null" json:"total_price"`
	IsUrgent        bool                 `gorm:"column:is_urgent;not null;default:false" json:"is_urgent"`
	DeadlineDate    *time.Time           `gorm:"column:deadline_date;type:date" json:"deadline_date,omitempty"`
	CustomerNotes   *string              `gorm:"column:customer_notes" json:"customer_notes,omitempty"`
	AdminNotes      *string              `gorm:"column:admin_notes" json:"admin_notes,omitempty"`
	Status          enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'pending';index" json:"status"`
	ApprovalStatus  enums.ApprovalStatus `gorm:"column:approval_status;type:text;not null;default:'pending_review'" json:"approval_status"`
	RejectionReason *string              `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	ReviewedAt      *time.Time           `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	DesignFiles     []string             `gorm:"column:design_files;serializer:json" json:"design_files"`
	FileWarnings    []string             `gorm:"-" json:"file_warnings,omitempty"`
	Version         int                  `gorm:"column:version;not null;default:0" json:"-"`
	Product         *Product             `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Material        *Material            `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
	Finishing       *Finishing           `gorm:"foreignKey:FinishingID" json:"finishing,omitempty"`
	Files           []OrderFile          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
