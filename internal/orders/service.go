package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db/models"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Repository defines the order persistence surface required by the service.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, offset, limit int) ([]models.Order, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.Order, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Create(ctx context.Context, row *models.Order) (*models.Order, error)
	Update(ctx context.Context, row *models.Order) (*models.Order, error)
}

// TxnRepository defines the transaction persistence surface required here.
type TxnRepository interface {
	WithTx(tx *gorm.DB) TxnRepository
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Transaction, error)
	Create(ctx context.Context, row *models.Transaction) (*models.Transaction, error)
	Update(ctx context.Context, row *models.Transaction) (*models.Transaction, error)
}

// Service exposes admin order operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Order, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error)
	Detail(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	repo Repository
	txns TxnRepository
	tx   txRunner
	now  func() time.Time
}

// NewService builds an order service backed by the provided stack.
func NewService(repo Repository, txns TxnRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if txns == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, txns: txns, tx: tx, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Order, int64, error) {
	rows, total, err := s.repo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, total, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, int64, error) {
	rows, total, err := s.repo.ListByUser(ctx, userID, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, total, nil
}

func (s *service) Detail(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return row, nil
}

// UpdateStatus stores the new status. Delivered stamps the delivery date and
// cascades the payment transaction to approved; canceled stamps the
// cancellation date. A delivered order without a transaction is a data
// integrity fault, not a silent no-op.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": "must be one of pending processing shipped delivered canceled"})
	}

	order, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		txns := s.txns.WithTx(tx)

		order.Status = parsed
		switch parsed {
		case enums.OrderStatusDelivered:
			now := s.now()
			order.DeliveredDate = &now

			txn, err := txns.FindByOrderID(ctx, order.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeIntegrity, "order has no payment transaction")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transaction")
			}
			txn.Status = enums.TransactionStatusApproved
			if _, err := txns.Update(ctx, txn); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update transaction")
			}

		case enums.OrderStatusCanceled:
			now := s.now()
			order.CanceledDate = &now
		}

		if _, err := repo.Update(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
