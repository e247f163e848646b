package address

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

// AddressRepository encapsulates shipping address persistence.
type AddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository binds the repository to the provided GORM handle.
func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *AddressRepository) WithTx(tx *gorm.DB) *AddressRepository {
	if tx == nil {
		return r
	}
	return &AddressRepository{db: tx}
}

// FindDefaultByUser returns the user's default address.
func (r *AddressRepository) FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	var row models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByUser returns all addresses belonging to the user.
func (r *AddressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var rows []models.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts the provided address.
func (r *AddressRepository) Create(ctx context.Context, row *models.Address) (*models.Address, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// ClearDefaultForUser unsets is_default on every address of the user.
func (r *AddressRepository) ClearDefaultForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}
