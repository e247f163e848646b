package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
)

// OrderRepository encapsulates order persistence.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository binds the repository to the provided GORM handle.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *OrderRepository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &OrderRepository{db: tx}
}

// List returns a page of orders newest first plus the total count.
func (r *OrderRepository) List(ctx context.Context, offset, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByUser returns a page of one user's orders newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []models.Order
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// FindByID returns the order with its items, products and transaction.
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var row models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Transaction").
		Preload("User").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, row *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided order.
func (r *OrderRepository) Update(ctx context.Context, row *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// TransactionRepository encapsulates payment transaction persistence.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository binds the repository to the provided GORM handle.
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *TransactionRepository) WithTx(tx *gorm.DB) TxnRepository {
	if tx == nil {
		return r
	}
	return &TransactionRepository{db: tx}
}

// FindByOrderID returns the transaction belonging to the order.
func (r *TransactionRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Transaction, error) {
	var row models.Transaction
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts the provided transaction.
func (r *TransactionRepository) Create(ctx context.Context, row *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Update saves the provided transaction.
func (r *TransactionRepository) Update(ctx context.Context, row *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}
