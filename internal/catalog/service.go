package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

// Service exposes catalog reads with domain error mapping.
type Service interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProductMaterials(ctx context.Context, productID uuid.UUID) ([]models.Material, error)
	ListProductFinishings(ctx context.Context, productID uuid.UUID) ([]models.Finishing, error)
	ListMaterials(ctx context.Context) ([]models.Material, error)
	GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error)
	GetFinishing(ctx context.Context, id uuid.UUID) (*models.Finishing, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProductMaterials(ctx context.Context, productID uuid.UUID) ([]models.Material, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	materials, err := s.repo.ListProductMaterials(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product materials")
	}
	return materials, nil
}

func (s *service) ListProductFinishings(ctx context.Context, productID uuid.UUID) ([]models.Finishing, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	finishings, err := s.repo.ListProductFinishings(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product finishings")
	}
	return finishings, nil
}

func (s *service) ListMaterials(ctx context.Context) ([]models.Material, error) {
	materials, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list materials")
	}
	return materials, nil
}

func (s *service) GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	material, err := s.repo.FindMaterial(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load material")
	}
	return material, nil
}

func (s *service) GetFinishing(ctx context.Context, id uuid.UUID) (*models.Finishing, error) {
	finishing, err := s.repo.FindFinishing(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "finishing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load finishing")
	}
	return finishing, nil
}
