package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/internal/files"
	"github.com/fajarnugraha/cetakin-backend/internal/pricing"
	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
	"github.com/fajarnugraha/cetakin-backend/pkg/logger"
	"github.com/fajarnugraha/cetakin-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CatalogReader resolves the catalog entities pricing needs.
type CatalogReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error)
	GetFinishing(ctx context.Context, id uuid.UUID) (*models.Finishing, error)
}

// Service defines order-level operations.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, filters ListFilters) ([]models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req TransitionRequest) (*models.Order, error)
	Approve(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*models.Order, error)
	CalculatePrice(ctx context.Context, req PriceRequest) (*pricing.Breakdown, error)
}

type service struct {
	repo         Repository
	tx           txRunner
	catalog      CatalogReader
	storage      files.Storage
	maxFileBytes int64
	logg         *logger.Logger
	metrics      *metrics.OrderMetrics
	now          func() time.Time
}

// NewService builds the order service with its collaborators. Metrics may be
// nil; all counters degrade to no-ops.
func NewService(
	repo Repository,
	tx txRunner,
	catalog CatalogReader,
	storage files.Storage,
	maxFileBytes int64,
	logg *logger.Logger,
	orderMetrics *metrics.OrderMetrics,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if storage == nil {
		return nil, fmt.Errorf("file storage required")
	}
	return &service{
		repo:         repo,
		tx:           tx,
		catalog:      catalog,
		storage:      storage,
		maxFileBytes: maxFileBytes,
		logg:         logg,
		metrics:      orderMetrics,
		now:          time.Now,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	resolved, err := s.resolveCatalog(ctx, input.ProductID, input.MaterialID, input.FinishingID)
	if err != nil {
		return nil, err
	}

	breakdown, err := pricing.Compute(pricing.Input{
		Product:   resolved.product,
		Material:  resolved.material,
		Finishing: resolved.finishing,
		Width:     input.Width,
		Height:    input.Height,
		Quantity:  input.Quantity,
		IsUrgent:  input.IsUrgent,
	})
	if err != nil {
		return nil, err
	}

	for _, upload := range input.DesignFiles {
		if err := files.Validate(upload, s.maxFileBytes); err != nil {
			return nil, err
		}
	}

	now := s.now()
	order := &models.Order{
		ProductID:      input.ProductID,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		CustomerEmail:  input.CustomerEmail,
		Width:          input.Width,
		Height:         input.Height,
		Quantity:       input.Quantity,
		MaterialID:     input.MaterialID,
		FinishingID:    input.FinishingID,
		Subtotal:       breakdown.Subtotal,
		MaterialCost:   breakdown.MaterialCost,
		FinishingCost:  breakdown.FinishingCost,
		UrgentFee:      breakdown.UrgentFee,
		TotalPrice:     breakdown.TotalPrice,
		IsUrgent:       input.IsUrgent,
		DeadlineDate:   input.DeadlineDate,
		CustomerNotes:  input.CustomerNotes,
		Status:         enums.OrderStatusPending,
		ApprovalStatus: enums.ApprovalStatusPendingReview,
		DesignFiles:    []string{},
	}

	var fileErrs error
	var failedFiles []string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		seq, err := repo.NextSequence(ctx, dayKey(now))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance order counter")
		}
		order.OrderNumber = formatOrderNumber(now, seq)

		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		var rows []models.OrderFile
		for _, upload := range input.DesignFiles {
			stored, err := s.storage.Save(ctx, order.ID, upload)
			if err != nil {
				fileErrs = multierr.Append(fileErrs, fmt.Errorf("%s: %w", upload.FileName, err))
				failedFiles = append(failedFiles, upload.FileName)
				continue
			}
			rows = append(rows, models.OrderFile{
				OrderID:  order.ID,
				FileName: stored.FileName,
				FilePath: stored.Path,
				FileType: stored.ContentType,
				FileSize: stored.Size,
			})
			order.DesignFiles = append(order.DesignFiles, stored.Path)
		}

		if err := repo.CreateFiles(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order files")
		}
		if len(order.DesignFiles) > 0 {
			if err := repo.UpdateDesignFiles(ctx, order.ID, order.DesignFiles); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record design file paths")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fileErrs != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithOrderNumber(ctx, order.OrderNumber),
			"some design files failed to store: "+fileErrs.Error())
	}

	s.metrics.IncCreated()

	created, err := s.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	created.FileWarnings = failedFiles
	return created, nil
}

func (s *service) ListOrders(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, req TransitionRequest) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	before := order.ApprovalStatus
	if err := Apply(order, req, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateState(ctx, order, order.Version); err != nil {
		if errors.Is(err, ErrStaleOrder) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order was modified concurrently, retry")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order state")
	}

	if before != order.ApprovalStatus {
		switch order.ApprovalStatus {
		case enums.ApprovalStatusApproved:
			s.metrics.IncApproved()
		case enums.ApprovalStatusRejected:
			s.metrics.IncRejected()
		}
	}

	return order, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	approved := enums.ApprovalStatusApproved.String()
	return s.UpdateStatus(ctx, id, TransitionRequest{ApprovalStatus: &approved})
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reason string) (*models.Order, error) {
	rejected := enums.ApprovalStatusRejected.String()
	return s.UpdateStatus(ctx, id, TransitionRequest{
		ApprovalStatus:  &rejected,
		RejectionReason: &reason,
	})
}

func (s *service) CalculatePrice(ctx context.Context, req PriceRequest) (*pricing.Breakdown, error) {
	resolved, err := s.resolveCatalog(ctx, req.ProductID, req.MaterialID, req.FinishingID)
	if err != nil {
		return nil, err
	}

	breakdown, err := pricing.Compute(pricing.Input{
		Product:   resolved.product,
		Material:  resolved.material,
		Finishing: resolved.finishing,
		Width:     req.Width,
		Height:    req.Height,
		Quantity:  req.Quantity,
		IsUrgent:  req.IsUrgent,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncPriceQuote()
	return breakdown, nil
}

type resolvedCatalog struct {
	product   *models.Product
	material  *models.Material
	finishing *models.Finishing
}

// resolveCatalog loads and cross-checks the referenced catalog rows. Unknown
// ids surface as field-level validation errors, not 404s, because they arrive
// inside a request body.
func (s *service) resolveCatalog(ctx context.Context, productID uuid.UUID, materialID, finishingID *uuid.UUID) (*resolvedCatalog, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if pkgerrors.As(err).Code() == pkgerrors.CodeNotFound {
			return nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"product_id": {"product does not exist"},
			})
		}
		return nil, err
	}

	resolved := &resolvedCatalog{product: product}

	if materialID != nil {
		material, err := s.catalog.GetMaterial(ctx, *materialID)
		if err != nil {
			if pkgerrors.As(err).Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
					"material_id": {"material does not exist"},
				})
			}
			return nil, err
		}
		if material.ProductID != product.ID || !material.IsActive {
			return nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"material_id": {"material is not available for this product"},
			})
		}
		resolved.material = material
	}

	if finishingID != nil {
		finishing, err := s.catalog.GetFinishing(ctx, *finishingID)
		if err != nil {
			if pkgerrors.As(err).Code() == pkgerrors.CodeNotFound {
				return nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
					"finishing_id": {"finishing does not exist"},
				})
			}
			return nil, err
		}
		if finishing.ProductID != product.ID || !finishing.IsActive {
			return nil, pkgerrors.NewFieldValidation("Validation error", map[string][]string{
				"finishing_id": {"finishing is not available for this product"},
			})
		}
		resolved.finishing = finishing
	}

	return resolved, nil
}
