package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
)

// Product is a catalog entry customers order against. BasePrice is the
// per-unit reference price the pricing strategies start from.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null;default:'standard'" json:"category"`
	Description *string               `gorm:"column:description" json:"description,omitempty"`
	BasePrice   decimal.Decimal       `gorm:"column:base_price;type:numeric(12,2);not null" json:"base_price"`
	Unit        string                `gorm:"column:unit;not null" json:"unit"`
	ImageURL    *string               `gorm:"column:image_url" json:"image_url,omitempty"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Materials   []Material            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"materials,omitempty"`
	Finishings  []Finishing           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"finishings,omitempty"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
