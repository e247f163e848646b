package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

// ShopSort names the storefront listing orders.
type ShopSort string

const (
	SortDefault   ShopSort = "default"
	SortDate      ShopSort = "date"
	SortPrice     ShopSort = "price"
	SortPriceDesc ShopSort = "price-desc"
)

// ProductRepository encapsulates product persistence.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository binds the repository to the provided GORM handle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	if tx == nil {
		return r
	}
	return &ProductRepository{db: tx}
}

// List returns a page of products for the admin listing, newest first.
func (r *ProductRepository) List(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListShop returns the storefront page of products with the requested sort.
func (r *ProductRepository) ListShop(ctx context.Context, sort ShopSort, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Preload("Category").Preload("Brand")
	switch sort {
	case SortDate:
		query = query.Order("created_at DESC")
	case SortPrice:
		query = query.Order("regular_price ASC")
	case SortPriceDesc:
		query = query.Order("regular_price DESC")
	default:
		query = query.Order("created_at ASC")
	}

	var rows []models.Product
	if err := query.Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID returns the product with the given id.
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindBySlug returns the product with the given slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Where("slug = ?", slug).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListRelated returns up to limit products sharing the category, excluding
// the product itself.
func (r *ProductRepository) ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ?", categoryID, excludeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindManyByIDs returns the products matching the given ids.
func (r *ProductRepository) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts the provided product.
func (r *ProductRepository) Create(ctx context.Context, row *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided product.
func (r *ProductRepository) Update(ctx context.Context, row *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the product with the given id.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}
