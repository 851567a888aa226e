package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateFiles(ctx context.Context, files []models.OrderFile) error
	UpdateDesignFiles(ctx context.Context, orderID uuid.UUID, paths []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filters ListFilters) ([]models.Order, error)
	UpdateState(ctx context.Context, order *models.Order, expectedVersion int) error
	NextSequence(ctx context.Context, day string) (int, error)
}
