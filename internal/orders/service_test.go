package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fajarnugraha/cetakin-backend/internal/files"
	"github.com/fajarnugraha/cetakin-backend/pkg/db/models"
	"github.com/fajarnugraha/cetakin-backend/pkg/enums"
	pkgerrors "github.com/fajarnugraha/cetakin-backend/pkg/errors"
)

type stubOrdersRepo struct {
	orders      map[uuid.UUID]*models.Order
	files       []models.OrderFile
	sequences   map[string]int
	updateState func(ctx context.Context, order *models.Order, expectedVersion int) error
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{
		orders:    make(map[uuid.UUID]*models.Order),
		sequences: make(map[string]int),
	}
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrdersRepo) CreateFiles(ctx context.Context, files []models.OrderFile) error {
	s.files = append(s.files, files...)
	return nil
}

func (s *stubOrdersRepo) UpdateDesignFiles(ctx context.Context, orderID uuid.UUID, paths []string) error {
	order, ok := s.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.DesignFiles = paths
	return nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrdersRepo) List(ctx context.Context, filters ListFilters) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if filters.CustomerPhone != "" && order.CustomerPhone != filters.CustomerPhone {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrdersRepo) UpdateState(ctx context.Context, order *models.Order, expectedVersion int) error {
	if s.updateState != nil {
		return s.updateState(ctx, order, expectedVersion)
	}
	stored, ok := s.orders[order.ID]
	if !ok || stored.Version != expectedVersion {
		return ErrStaleOrder
	}
	copied := *order
	copied.Version = expectedVersion + 1
	s.orders[order.ID] = &copied
	order.Version = copied.Version
	return nil
}

func (s *stubOrdersRepo) NextSequence(ctx context.Context, day string) (int, error) {
	s.sequences[day]++
	return s.sequences[day], nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubCatalog struct {
	products   map[uuid.UUID]*models.Product
	materials  map[uuid.UUID]*models.Material
	finishings map[uuid.UUID]*models.Finishing
}

func (s *stubCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalog) GetMaterial(ctx context.Context, id uuid.UUID) (*models.Material, error) {
	if m, ok := s.materials[id]; ok {
		return m, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
}

func (s *stubCatalog) GetFinishing(ctx context.Context, id uuid.UUID) (*models.Finishing, error) {
	if f, ok := s.finishings[id]; ok {
		return f, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "finishing not found")
}

type stubStorage struct {
	saved    []files.Stored
	failures map[string]error
}

func (s *stubStorage) Save(ctx context.Context, orderID uuid.UUID, upload files.Upload) (*files.Stored, error) {
	if err, ok := s.failures[upload.FileName]; ok {
		return nil, err
	}
	stored := files.Stored{
		FileName:    upload.FileName,
		Path:        "orders/" + orderID.String() + "/" + upload.FileName,
		ContentType: upload.ContentType,
		Size:        upload.Size,
	}
	s.saved = append(s.saved, stored)
	return &stored, nil
}

type fixture struct {
	service Service
	repo    *stubOrdersRepo
	catalog *stubCatalog
	storage *stubStorage

	bannerID    uuid.UUID
	materialID  uuid.UUID
	finishingID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	banner := &models.Product{
		ID:        uuid.New(),
		Name:      "Banner Outdoor",
		Category:  enums.ProductCategoryBanner,
		BasePrice: decimal.NewFromInt(20000),
		IsActive:  true,
	}
	material := &models.Material{
		ID:              uuid.New(),
		ProductID:       banner.ID,
		Name:            "Flexi 280gr",
		PriceMultiplier: decimal.NewFromInt(1),
		IsActive:        true,
	}
	finishing := &models.Finishing{
		ID:              uuid.New(),
		ProductID:       banner.ID,
		Name:            "Mata Ayam",
		AdditionalPrice: decimal.NewFromInt(5000),
		IsActive:        true,
	}

	repo := newStubOrdersRepo()
	catalog := &stubCatalog{
		products:   map[uuid.UUID]*models.Product{banner.ID: banner},
		materials:  map[uuid.UUID]*models.Material{material.ID: material},
		finishings: map[uuid.UUID]*models.Finishing{finishing.ID: finishing},
	}
	storage := &stubStorage{failures: map[string]error{}}

	svc, err := NewService(repo, stubTxRunner{}, catalog, storage, 5<<20, nil, nil)
	require.NoError(t, err)

	return &fixture{
		service:     svc,
		repo:        repo,
		catalog:     catalog,
		storage:     storage,
		bannerID:    banner.ID,
		materialID:  material.ID,
		finishingID: finishing.ID,
	}
}

func validInput(f *fixture) CreateOrderInput {
	width := decimal.NewFromInt(200)
	height := decimal.NewFromInt(100)
	return CreateOrderInput{
		ProductID:     f.bannerID,
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
		Width:         &width,
		Height:        &height,
		Quantity:      1,
	}
}

func TestCreateOrderComputesPriceServerSide(t *testing.T) {
	f := newFixture(t)

	order, err := f.service.CreateOrder(context.Background(), validInput(f))
	require.NoError(t, err)

	// 200x100 cm = 2 m² at 20000/m².
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(40000)), "subtotal %s", order.Subtotal)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(40000)))
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.Equal(t, enums.ApprovalStatusPendingReview, order.ApprovalStatus)

	prefix := "ORD-" + time.Now().Format("20060102") + "-"
	assert.True(t, strings.HasPrefix(order.OrderNumber, prefix), order.OrderNumber)
	assert.True(t, strings.HasSuffix(order.OrderNumber, "-001"), order.OrderNumber)
}

func TestCreateOrderUrgentFee(t *testing.T) {
	f := newFixture(t)
	input := validInput(f)
	input.IsUrgent = true

	order, err := f.service.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, order.UrgentFee.Equal(decimal.NewFromInt(12000)), "urgent fee %s", order.UrgentFee)
	assert.True(t, order.TotalPrice.Equal(order.Subtotal.Add(order.UrgentFee)))
}

func TestCreateOrderNumbersIncrease(t *testing.T) {
	f := newFixture(t)

	var numbers []string
	for i := 0; i < 3; i++ {
		order, err := f.service.CreateOrder(context.Background(), validInput(f))
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}

	assert.Len(t, numbers, 3)
	for i, number := range numbers {
		assert.True(t, strings.HasSuffix(number, fmt.Sprintf("-%03d", i+1)), number)
	}
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newFixture(t)
	input := validInput(f)
	input.ProductID = uuid.New()

	_, err := f.service.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, f.repo.orders)
}

func TestCreateOrderMaterialFromOtherProduct(t *testing.T) {
	f := newFixture(t)

	stray := &models.Material{
		ID:              uuid.New(),
		ProductID:       uuid.New(),
		Name:            "Other",
		PriceMultiplier: decimal.NewFromInt(1),
		IsActive:        true,
	}
	f.catalog.materials[stray.ID] = stray

	input := validInput(f)
	input.MaterialID = &stray.ID

	_, err := f.service.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCreateOrderStoresFiles(t *testing.T) {
	f := newFixture(t)
	input := validInput(f)
	input.DesignFiles = []files.Upload{
		{FileName: "design.png", ContentType: "image/png", Size: 100, Content: strings.NewReader("a")},
		{FileName: "proof.pdf", ContentType: "application/pdf", Size: 200, Content: strings.NewReader("b")},
	}

	order, err := f.service.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Len(t, f.repo.files, 2)
	assert.Len(t, order.DesignFiles, 2)
	assert.Len(t, f.storage.saved, 2)
}

func TestCreateOrderRejectsBadFileType(t *testing.T) {
	f := newFixture(t)
	input := validInput(f)
	input.DesignFiles = []files.Upload{
		{FileName: "design.exe", ContentType: "application/octet-stream", Size: 100},
	}

	_, err := f.service.CreateOrder(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	assert.Empty(t, f.repo.orders)
}

func TestCreateOrderSurvivesFileStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.storage.failures["broken.png"] = fmt.Errorf("disk full")

	input := validInput(f)
	input.DesignFiles = []files.Upload{
		{FileName: "broken.png", ContentType: "image/png", Size: 100},
		{FileName: "good.png", ContentType: "image/png", Size: 100, Content: strings.NewReader("ok")},
	}

	order, err := f.service.CreateOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Len(t, f.repo.files, 1)
	assert.Len(t, order.DesignFiles, 1)
	assert.Equal(t, []string{"broken.png"}, order.FileWarnings)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetOrder(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestApproveStartsProduction(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.CreateOrder(context.Background(), validInput(f))
	require.NoError(t, err)

	order, err := f.service.Approve(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, enums.ApprovalStatusApproved, order.ApprovalStatus)
	assert.Equal(t, enums.OrderStatusProcessing, order.Status)
	assert.NotNil(t, order.ReviewedAt)

	stored, err := f.service.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.ApprovalStatusApproved, stored.ApprovalStatus)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.CreateOrder(context.Background(), validInput(f))
	require.NoError(t, err)

	_, err = f.service.Reject(context.Background(), created.ID, "  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestRejectCancelsOrder(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.CreateOrder(context.Background(), validInput(f))
	require.NoError(t, err)

	order, err := f.service.Reject(context.Background(), created.ID, "file resolution is too low to print")
	require.NoError(t, err)

	assert.Equal(t, enums.ApprovalStatusRejected, order.ApprovalStatus)
	assert.Equal(t, enums.OrderStatusCancelled, order.Status)
	require.NotNil(t, order.RejectionReason)
}

func TestUpdateStatusTerminalOrder(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.CreateOrder(context.Background(), validInput(f))
	require.NoError(t, err)

	completed := enums.OrderStatusCompleted.String()
	_, err = f.service.UpdateStatus(context.Background(), created.ID, TransitionRequest{Status: &completed})
	require.NoError(t, err)

	pending := enums.OrderStatusPending.String()
	_, err = f.service.UpdateStatus(context.Background(), created.ID, TransitionRequest{Status: &pending})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
}

func TestUpdateStatusConcurrentConflict(t *testing.T) {
	f := newFixture(t)
	created, err := f.service.CreateOrder(context.Background(), validInput(f))
	require.NoError(t, err)

	f.repo.updateState = func(ctx context.Context, order *models.Order, expectedVersion int) error {
		return ErrStaleOrder
	}

	confirmed := enums.OrderStatusConfirmed.String()
	_, err = f.service.UpdateStatus(context.Background(), created.ID, TransitionRequest{Status: &confirmed})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestCalculatePrice(t *testing.T) {
	f := newFixture(t)
	width := decimal.NewFromInt(300)
	height := decimal.NewFromInt(100)

	breakdown, err := f.service.CalculatePrice(context.Background(), PriceRequest{
		ProductID:   f.bannerID,
		Width:       &width,
		Height:      &height,
		Quantity:    1,
		FinishingID: &f.finishingID,
	})
	require.NoError(t, err)

	// 3 m² × 20000 + 5000 finishing.
	assert.True(t, breakdown.Subtotal.Equal(decimal.NewFromInt(65000)), "subtotal %s", breakdown.Subtotal)
	assert.True(t, breakdown.TotalPrice.Equal(decimal.NewFromInt(65000)))
}

func TestCalculatePriceUnknownFinishing(t *testing.T) {
	f := newFixture(t)
	stray := uuid.New()

	_, err := f.service.CalculatePrice(context.Background(), PriceRequest{
		ProductID:   f.bannerID,
		Quantity:    1,
		FinishingID: &stray,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}
