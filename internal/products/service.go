package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
	"github.com/mcastellon/shopora-backend/pkg/slug"
)

// Gallery filenames are stored comma-joined in a single column. The create
// and update paths both normalize to a bare comma.
const gallerySeparator = ","

const relatedProductsLimit = 8

// Repository defines the persistence surface required by the product service.
type Repository interface {
	List(ctx context.Context, offset, limit int) ([]models.Product, int64, error)
	ListShop(ctx context.Context, sort ShopSort, offset, limit int) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error)
	FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	Create(ctx context.Context, row *models.Product) (*models.Product, error)
	Update(ctx context.Context, row *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes product catalog and storefront operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Product, int64, error)
	ListShop(ctx context.Context, sort ShopSort, params pagination.Params) ([]models.Product, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetDetail(ctx context.Context, slug string) (*Detail, error)
	Create(ctx context.Context, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a product service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// Detail is the storefront product page payload.
type Detail struct {
	Product models.Product   `json:"product"`
	Gallery []string         `json:"gallery"`
	Related []models.Product `json:"related"`
}

// CreateInput carries the fields accepted when creating a product.
type CreateInput struct {
	Name             string
	ShortDescription string
	Description      string
	RegularPrice     decimal.Decimal
	SalePrice        decimal.Decimal
	SKU              string
	StockStatus      string
	Featured         bool
	Quantity         int
	Image            string
	GalleryImages    []string
	CategoryID       uuid.UUID
	BrandID          uuid.UUID
}

// UpdateInput mirrors CreateInput; empty image fields keep the stored value.
type UpdateInput struct {
	Name             string
	ShortDescription string
	Description      string
	RegularPrice     decimal.Decimal
	SalePrice        decimal.Decimal
	SKU              string
	StockStatus      string
	Featured         bool
	Quantity         int
	Image            string
	GalleryImages    []string
	CategoryID       uuid.UUID
	BrandID          uuid.UUID
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Product, int64, error) {
	rows, total, err := s.repo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, total, nil
}

func (s *service) ListShop(ctx context.Context, sort ShopSort, params pagination.Params) ([]models.Product, int64, error) {
	rows, total, err := s.repo.ListShop(ctx, sort, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shop products")
	}
	return rows, total, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return row, nil
}

func (s *service) GetDetail(ctx context.Context, productSlug string) (*Detail, error) {
	row, err := s.repo.FindBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	related, err := s.repo.ListRelated(ctx, row.CategoryID, row.ID, relatedProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load related products")
	}

	return &Detail{
		Product: *row,
		Gallery: SplitGallery(row.Images),
		Related: related,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Product, error) {
	if err := validateInput(input.Name, input.StockStatus, input.RegularPrice, input.SalePrice, input.Quantity, input.CategoryID, input.BrandID); err != nil {
		return nil, err
	}

	row := &models.Product{
		Name:             input.Name,
		Slug:             slug.Make(input.Name),
		ShortDescription: input.ShortDescription,
		Description:      input.Description,
		RegularPrice:     input.RegularPrice,
		SalePrice:        input.SalePrice,
		SKU:              input.SKU,
		StockStatus:      enums.StockStatus(input.StockStatus),
		Featured:         input.Featured,
		Quantity:         input.Quantity,
		Image:            input.Image,
		Images:           JoinGallery(input.GalleryImages),
		CategoryID:       input.CategoryID,
		BrandID:          input.BrandID,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Product, error) {
	if err := validateInput(input.Name, input.StockStatus, input.RegularPrice, input.SalePrice, input.Quantity, input.CategoryID, input.BrandID); err != nil {
		return nil, err
	}

	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Name = input.Name
	row.Slug = slug.Make(input.Name)
	row.ShortDescription = input.ShortDescription
	row.Description = input.Description
	row.RegularPrice = input.RegularPrice
	row.SalePrice = input.SalePrice
	row.SKU = input.SKU
	row.StockStatus = enums.StockStatus(input.StockStatus)
	row.Featured = input.Featured
	row.Quantity = input.Quantity
	row.CategoryID = input.CategoryID
	row.BrandID = input.BrandID
	if input.Image != "" {
		row.Image = input.Image
	}
	if len(input.GalleryImages) > 0 {
		row.Images = JoinGallery(input.GalleryImages)
	}

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func validateInput(name, stockStatus string, regularPrice, salePrice decimal.Decimal, quantity int, categoryID, brandID uuid.UUID) error {
	details := map[string]string{}
	if name == "" {
		details["name"] = "is required"
	}
	if !enums.StockStatus(stockStatus).IsValid() {
		details["stock_status"] = "must be one of instock outofstock"
	}
	if regularPrice.IsNegative() {
		details["regular_price"] = "must be non-negative"
	}
	if salePrice.IsNegative() {
		details["sale_price"] = "must be non-negative"
	}
	if quantity < 0 {
		details["quantity"] = "must be non-negative"
	}
	if categoryID == uuid.Nil {
		details["category_id"] = "is required"
	}
	if brandID == uuid.Nil {
		details["brand_id"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// JoinGallery normalizes gallery filenames into the stored comma-joined form.
func JoinGallery(filenames []string) string {
	cleaned := make([]string, 0, len(filenames))
	for _, name := range filenames {
		name = strings.TrimSpace(name)
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return strings.Join(cleaned, gallerySeparator)
}

// SplitGallery expands the stored gallery column into filenames. Stored
// values with a trailing space after the comma are tolerated.
func SplitGallery(stored string) []string {
	if stored == "" {
		return nil
	}
	parts := strings.Split(stored, gallerySeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
