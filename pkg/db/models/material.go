package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Material is a substrate option scoped to one product. PriceMultiplier
// scales the product's base price; PricePerMeter is a legacy absolute pricing
// column kept for historical rows and unused by the engine.
type Material struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProductID       uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	Name            string           `gorm:"column:name;not null" json:"name"`
	PriceMultiplier decimal.Decimal  `gorm:"column:price_multiplier;type:numeric(6,2);not null;default:1" json:"price_multiplier"`
	PricePerMeter   *decimal.Decimal `gorm:"column:price_per_meter;type:numeric(12,2)" json:"price_per_meter,omitempty"`
	Description     *string          `gorm:"column:description" json:"description,omitempty"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
