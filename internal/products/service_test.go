package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
)

type stubProductRepo struct {
	bySlug  *models.Product
	byID    *models.Product
	related []models.Product
	created *models.Product

	gotSort  ShopSort
	gotLimit int
}

func (s *stubProductRepo) List(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (s *stubProductRepo) ListShop(ctx context.Context, sort ShopSort, offset, limit int) ([]models.Product, int64, error) {
	s.gotSort = sort
	return nil, 0, nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.byID == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byID, nil
}

func (s *stubProductRepo) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if s.bySlug == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.bySlug, nil
}

func (s *stubProductRepo) ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	s.gotLimit = limit
	return s.related, nil
}

func (s *stubProductRepo) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Create(ctx context.Context, row *models.Product) (*models.Product, error) {
	s.created = row
	return row, nil
}

func (s *stubProductRepo) Update(ctx context.Context, row *models.Product) (*models.Product, error) {
	return row, nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:         "USB-C Charger",
		RegularPrice: decimal.NewFromInt(25),
		SalePrice:    decimal.NewFromInt(20),
		SKU:          "CHG-25",
		StockStatus:  "instock",
		Quantity:     50,
		CategoryID:   uuid.New(),
		BrandID:      uuid.New(),
	}
}

func TestServiceCreateJoinsGalleryAndSlug(t *testing.T) {
	repo := &stubProductRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := validCreateInput()
	input.GalleryImages = []string{"a.jpg", " b.jpg ", ""}

	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.Slug != "usb-c-charger" {
		t.Fatalf("expected generated slug, got %q", created.Slug)
	}
	if created.Images != "a.jpg,b.jpg" {
		t.Fatalf("expected comma-joined gallery, got %q", created.Images)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := NewService(&stubProductRepo{})

	input := validCreateInput()
	input.Name = ""
	input.StockStatus = "backorder"
	input.RegularPrice = decimal.NewFromInt(-1)

	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	for _, field := range []string{"name", "stock_status", "regular_price"} {
		if _, present := details[field]; !present {
			t.Errorf("expected field error for %q, got %v", field, details)
		}
	}
}

func TestServiceGetDetail(t *testing.T) {
	product := &models.Product{
		ID:         uuid.New(),
		Name:       "Speaker",
		Slug:       "speaker",
		Images:     "one.jpg, two.jpg,three.jpg",
		CategoryID: uuid.New(),
	}
	repo := &stubProductRepo{
		bySlug:  product,
		related: []models.Product{{ID: uuid.New()}},
	}
	svc, _ := NewService(repo)

	detail, err := svc.GetDetail(context.Background(), "speaker")
	if err != nil {
		t.Fatalf("get detail: %v", err)
	}
	if len(detail.Gallery) != 3 || detail.Gallery[1] != "two.jpg" {
		t.Fatalf("expected gallery split with trimming, got %v", detail.Gallery)
	}
	if len(detail.Related) != 1 {
		t.Fatalf("expected related products, got %v", detail.Related)
	}
	if repo.gotLimit != relatedProductsLimit {
		t.Fatalf("expected related limit %d, got %d", relatedProductsLimit, repo.gotLimit)
	}
}

func TestServiceGetDetailNotFound(t *testing.T) {
	svc, _ := NewService(&stubProductRepo{})

	_, err := svc.GetDetail(context.Background(), "missing")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceListShopForwardsSort(t *testing.T) {
	repo := &stubProductRepo{}
	svc, _ := NewService(repo)

	_, _, err := svc.ListShop(context.Background(), SortPriceDesc, pagination.Params{Page: 1})
	if err != nil {
		t.Fatalf("list shop: %v", err)
	}
	if repo.gotSort != SortPriceDesc {
		t.Fatalf("expected sort forwarded, got %q", repo.gotSort)
	}
}

func TestJoinAndSplitGallery(t *testing.T) {
	joined := JoinGallery([]string{"x.jpg", "y.jpg"})
	if joined != "x.jpg,y.jpg" {
		t.Fatalf("unexpected join %q", joined)
	}
	if got := SplitGallery(""); got != nil {
		t.Fatalf("expected nil gallery for empty column, got %v", got)
	}
}
