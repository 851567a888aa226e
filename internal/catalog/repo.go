// Package catalog serves read-only product, material and finishing data.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
)

// Repository defines the catalog read operations.
type Repository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProductMaterials(ctx context.Context, productID uuid.UUID) ([]models.Material, error)
	ListProductFinishings(ctx context.Context, productID uuid.UUID) ([]models.Finishing, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	FindMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error)
	FindFinishing(ctx context.Context, id uuid.UUID) (*models.Finishing, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Materials", "is_active = ?", true).
		Preload("Finishings", "is_active = ?", true).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Materials", "is_active = ?", true).
		Preload("Finishings", "is_active = ?", true).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProductMaterials(ctx context.Context, productID uuid.UUID) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("name ASC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *repository) ListProductFinishings(ctx context.Context, productID uuid.UUID) ([]models.Finishing, error) {
	var finishings []models.Finishing
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ?", productID, true).
		Order("name ASC").
		Find(&finishings).Error
	if err != nil {
		return nil, err
	}
	return finishings, nil
}

func (r *repository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *repository) FindMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *repository) FindFinishing(ctx context.Context, id uuid.UUID) (*models.Finishing, error) {
	var finishing models.Finishing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&finishing).Error
	if err != nil {
		return nil, err
	}
	return &finishing, nil
}
