package coupons

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

// CouponRepository encapsulates coupon persistence.
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository binds the repository to the provided GORM handle.
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *CouponRepository) WithTx(tx *gorm.DB) *CouponRepository {
	if tx == nil {
		return r
	}
	return &CouponRepository{db: tx}
}

// List returns a page of coupons ordered by expiry date descending.
func (r *CouponRepository) List(ctx context.Context, offset, limit int) ([]models.Coupon, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Coupon
	err := r.db.WithContext(ctx).
		Order("expiry_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID returns the coupon with the given id.
func (r *CouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var row models.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindActiveByCode returns the coupon with the given code whose expiry date
// has not passed. Callers pass the start of the current day so a coupon
// expiring today still matches.
func (r *CouponRepository) FindActiveByCode(ctx context.Context, code string, today time.Time) (*models.Coupon, error) {
	var row models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND expiry_date >= ?", code, today).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the provided coupon.
func (r *CouponRepository) Create(ctx context.Context, row *models.Coupon) (*models.Coupon, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided coupon.
func (r *CouponRepository) Update(ctx context.Context, row *models.Coupon) (*models.Coupon, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes the coupon with the given id.
func (r *CouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Coupon{}).Error
}
