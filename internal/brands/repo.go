package brands

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

// BrandRepository encapsulates brand persistence.
type BrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository binds the repository to the provided GORM handle.
func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *BrandRepository) WithTx(tx *gorm.DB) *BrandRepository {
	if tx == nil {
		return r
	}
	return &BrandRepository{db: tx}
}

// List returns a page of brands ordered newest first plus the total count.
func (r *BrandRepository) List(ctx context.Context, offset, limit int) ([]models.Brand, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Brand{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Brand
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID returns the brand with the given id.
func (r *BrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	var row models.Brand
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the provided brand.
func (r *BrandRepository) Create(ctx context.Context, row *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided brand.
func (r *BrandRepository) Update(ctx context.Context, row *models.Brand) (*models.Brand, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the brand with the given id.
func (r *BrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Brand{}).Error
}
