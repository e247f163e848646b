package categories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

// CategoryRepository encapsulates category persistence.
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository binds the repository to the provided GORM handle.
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *CategoryRepository) WithTx(tx *gorm.DB) *CategoryRepository {
	if tx == nil {
		return r
	}
	return &CategoryRepository{db: tx}
}

// List returns a page of categories ordered by name plus the total count.
func (r *CategoryRepository) List(ctx context.Context, offset, limit int) ([]models.Category, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Category
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListAll returns every category ordered by name, for storefront filters.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID returns the category with the given id.
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the provided category.
func (r *CategoryRepository) Create(ctx context.Context, row *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided category.
func (r *CategoryRepository) Update(ctx context.Context, row *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the category with the given id.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}
