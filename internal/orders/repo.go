package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
)

// ErrStaleOrder signals the compare-and-set update lost to a concurrent
// writer; the caller should reload and retry or surface a conflict.
var ErrStaleOrder = errors.New("order version is stale")

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateFiles(ctx context.Context, files []models.OrderFile) error {
	if len(files) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&files).Error
}

func (r *repository) UpdateDesignFiles(ctx context.Context, orderID uuid.UUID, paths []string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("design_files", paths).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Material").
		Preload("Finishing").
		Preload("Files").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Files").
		Order("created_at DESC")

	if filters.CustomerPhone != "" {
		query = query.Where("customer_phone = ?", filters.CustomerPhone)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateState persists the mutable state columns guarded by the version
// column. It fails with ErrStaleOrder when another writer got there first.
func (r *repository) UpdateState(ctx context.Context, order *models.Order, expectedVersion int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, expectedVersion).
		Updates(map[string]any{
			"status":           order.Status,
			"approval_status":  order.ApprovalStatus,
			"rejection_reason": order.RejectionReason,
			"reviewed_at":      order.ReviewedAt,
			"admin_notes":      order.AdminNotes,
			"version":          expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleOrder
	}
	order.Version = expectedVersion + 1
	return nil
}

// NextSequence atomically advances the per-day counter and returns the new
// value. The upsert keeps concurrent order creation race-free.
func (r *repository) NextSequence(ctx context.Context, day string) (int, error) {
	var seq int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_counters (day, last_seq) VALUES (?, 1)
		ON CONFLICT (day) DO UPDATE SET last_seq = order_counters.last_seq + 1
		RETURNING last_seq
	`, day).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
