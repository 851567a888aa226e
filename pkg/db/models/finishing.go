package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Finishing is a post-print treatment scoped to one product, priced as a flat
// per-unit addition.
type Finishing struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	Name            string          `gorm:"column:name;not null" json:"name"`
	AdditionalPrice decimal.Decimal `gorm:"column:additional_price;type:numeric(12,2);not null;default:0" json:"additional_price"`
	Description     *string         `gorm:"column:description" json:"description,omitempty"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (f *Finishing) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
