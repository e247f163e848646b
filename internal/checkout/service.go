package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/internal/address"
	"github.com/mcastellon/shopora-backend/internal/cart"
	"github.com/mcastellon/shopora-backend/internal/orders"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type checkoutStager interface {
	SetCheckoutAmounts(ctx context.Context, sessionID string) (*cart.Amounts, error)
}

type sessionState interface {
	Lines(ctx context.Context, sessionID string) ([]cart.Line, error)
	ClearPricing(ctx context.Context, sessionID string) error
	SaveOrderID(ctx context.Context, sessionID string, orderID uuid.UUID) error
	OrderID(ctx context.Context, sessionID string) (uuid.UUID, bool, error)
}

type addressResolver interface {
	FindDefault(ctx context.Context, userID uuid.UUID) (*models.Address, error)
	CreateDefault(ctx context.Context, userID uuid.UUID, input address.Input) (*models.Address, error)
}

// Service executes order placement orchestration.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string, input PlaceOrderInput) (*models.Order, error)
	ConfirmationOrderID(ctx context.Context, sessionID string) (uuid.UUID, error)
}

// PlaceOrderInput captures the checkout form submission. Address is optional
// when the user already has a default shipping address on file.
type PlaceOrderInput struct {
	Address     *address.Input
	PaymentMode string
}

type service struct {
	tx         txRunner
	ordersRepo orders.Repository
	txnRepo    orders.TxnRepository
	addresses  addressResolver
	sessions   sessionState
	cartSvc    checkoutStager
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	ordersRepo orders.Repository,
	txnRepo orders.TxnRepository,
	addresses addressResolver,
	sessions sessionState,
	cartSvc checkoutStager,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if txnRepo == nil {
		return nil, fmt.Errorf("transaction repository required")
	}
	if addresses == nil {
		return nil, fmt.Errorf("address service required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	return &service{
		tx:         tx,
		ordersRepo: ordersRepo,
		txnRepo:    txnRepo,
		addresses:  addresses,
		sessions:   sessions,
		cartSvc:    cartSvc,
	}, nil
}

// PlaceOrder turns the session cart into a persisted order. The shipping
// address is the user's default one, created from the form input when no
// default exists yet. Order, items and the pending payment transaction commit
// together; on success the session pricing state is cleared and the order id
// recorded for the confirmation page.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, sessionID string, input PlaceOrderInput) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.PaymentMode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"mode": "is required"})
	}

	shipTo, err := s.resolveAddress(ctx, userID, input.Address)
	if err != nil {
		return nil, err
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	amounts, err := s.cartSvc.SetCheckoutAmounts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if amounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.ordersRepo.WithTx(tx)
		txnRepo := s.txnRepo.WithTx(tx)

		order := &models.Order{
			UserID:   userID,
			Subtotal: amounts.Subtotal,
			Discount: amounts.Discount,
			Tax:      amounts.Tax,
			Total:    amounts.Total,
			Name:     shipTo.Name,
			Phone:    shipTo.Phone,
			Locality: shipTo.Locality,
			Address:  shipTo.Address,
			City:     shipTo.City,
			State:    shipTo.State,
			Country:  shipTo.Country,
			Landmark: shipTo.Landmark,
			Zip:      shipTo.Zip,
			Status:   enums.OrderStatusPending,
		}
		for _, line := range lines {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: line.ProductID,
				Price:     line.Price,
				Quantity:  line.Qty,
			})
		}

		persisted, err := ordersRepo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "create order")
		}

		if _, err := txnRepo.Create(ctx, &models.Transaction{
			UserID:  userID,
			OrderID: persisted.ID,
			Mode:    input.PaymentMode,
			Status:  enums.TransactionStatusPending,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "create payment transaction")
		}

		created = persisted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.ClearPricing(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.sessions.SaveOrderID(ctx, sessionID, created.ID); err != nil {
		return nil, err
	}
	return created, nil
}

// ConfirmationOrderID returns the id of the order placed by this session.
func (s *service) ConfirmationOrderID(ctx context.Context, sessionID string) (uuid.UUID, error) {
	if sessionID == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	id, ok, err := s.sessions.OrderID(ctx, sessionID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "no order placed in this session")
	}
	return id, nil
}

func (s *service) resolveAddress(ctx context.Context, userID uuid.UUID, input *address.Input) (*models.Address, error) {
	existing, err := s.addresses.FindDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if input == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	return s.addresses.CreateDefault(ctx, userID, *input)
}
