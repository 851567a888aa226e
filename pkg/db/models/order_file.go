package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderFile is a stored design upload owned by an order.
type OrderFile struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	FileName   string    `gorm:"column:file_name;not null" json:"file_name"`
	FilePath   string    `gorm:"column:file_path;not null" json:"file_path"`
	FileType   string    `gorm:"column:file_type;not null" json:"file_type"`
	FileSize   int64     `gorm:"column:file_size;not null" json:"file_size"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime" json:"uploaded_at"`
}

func (f *OrderFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
