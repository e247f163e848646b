package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/internal/coupons"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

type couponLoader interface {
	FindActiveByCode(ctx context.Context, code string, today time.Time) (*models.Coupon, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service owns the session cart: line mutations, coupon application and the
// checkout amounts staging used by order placement.
type Service interface {
	Content(ctx context.Context, sessionID string) (*Content, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*Content, error)
	IncreaseItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Content, error)
	DecreaseItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Content, error)
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Content, error)
	Empty(ctx context.Context, sessionID string) error
	ApplyCoupon(ctx context.Context, sessionID, code string, today time.Time) (*ApplyResult, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*Amounts, error)
	SetCheckoutAmounts(ctx context.Context, sessionID string) (*Amounts, error)
}

type service struct {
	sessions   *SessionStore
	couponRepo couponLoader
	products   productLoader
	taxPercent decimal.Decimal
}

// NewService builds the cart service.
func NewService(sessions *SessionStore, couponRepo couponLoader, products productLoader, taxPercent decimal.Decimal) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if couponRepo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if taxPercent.IsNegative() {
		return nil, fmt.Errorf("tax percent must be non-negative")
	}
	return &service{
		sessions:   sessions,
		couponRepo: couponRepo,
		products:   products,
		taxPercent: taxPercent,
	}, nil
}

// Content is the cart view returned after every mutation.
type Content struct {
	Lines   []Line         `json:"lines"`
	Count   int            `json:"count"`
	Coupon  *AppliedCoupon `json:"coupon,omitempty"`
	Amounts Amounts        `json:"amounts"`
}

// ApplyResult reports the outcome of a coupon application.
type ApplyResult struct {
	AlreadyApplied bool          `json:"already_applied"`
	Coupon         AppliedCoupon `json:"coupon"`
	Amounts        Amounts       `json:"amounts"`
}

func (s *service) Content(ctx context.Context, sessionID string) (*Content, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.sessions.Coupon(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Content{
		Lines:   lines,
		Count:   Count(lines),
		Coupon:  coupon,
		Amounts: ComputeAmounts(lines, coupon, s.taxPercent),
	}, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, qty int) (*Content, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.SalePrice,
			Qty:       qty,
			Image:     product.Image,
		})
	}

	return s.saveAndPrice(ctx, sessionID, lines)
}

func (s *service) IncreaseItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Content, error) {
	return s.adjustQty(ctx, sessionID, productID, 1)
}

func (s *service) DecreaseItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Content, error) {
	return s.adjustQty(ctx, sessionID, productID, -1)
}

func (s *service) adjustQty(ctx context.Context, sessionID string, productID uuid.UUID, delta int) (*Content, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range lines {
		if lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	lines[idx].Qty += delta
	if lines[idx].Qty <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	return s.saveAndPrice(ctx, sessionID, lines)
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) (*Content, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	removed := false
	for _, line := range lines {
		if line.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	return s.saveAndPrice(ctx, sessionID, kept)
}

func (s *service) Empty(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.sessions.ClearPricing(ctx, sessionID)
}

func (s *service) ApplyCoupon(ctx context.Context, sessionID, code string, today time.Time) (*ApplyResult, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	coupon, err := s.couponRepo.FindActiveByCode(ctx, code, coupons.StartOfDay(today))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon is invalid or expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := Subtotal(lines)
	if subtotal.LessThan(coupon.CartValue) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cart subtotal must be at least %s to use this coupon", coupon.CartValue.StringFixed(2))).
			WithDetails(map[string]string{"minimum": coupon.CartValue.StringFixed(2)})
	}

	applied, err := s.sessions.Coupon(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if applied != nil && applied.Code == coupon.Code {
		// Idempotent: report without touching state.
		return &ApplyResult{
			AlreadyApplied: true,
			Coupon:         *applied,
			Amounts:        ComputeAmounts(lines, applied, s.taxPercent),
		}, nil
	}

	snapshot := AppliedCoupon{
		ID:        coupon.ID,
		Code:      coupon.Code,
		Type:      coupon.Type,
		Value:     coupon.Value,
		CartValue: coupon.CartValue,
		AppliedAt: today,
	}
	if err := s.sessions.SaveCoupon(ctx, sessionID, snapshot); err != nil {
		return nil, err
	}

	amounts := ComputeAmounts(lines, &snapshot, s.taxPercent)
	if err := s.sessions.SaveDiscounts(ctx, sessionID, amounts); err != nil {
		return nil, err
	}

	return &ApplyResult{Coupon: snapshot, Amounts: amounts}, nil
}

func (s *service) RemoveCoupon(ctx context.Context, sessionID string) (*Amounts, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	applied, err := s.sessions.Coupon(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if applied == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "no coupon applied")
	}

	// An admin may have deleted the coupon since it was applied; clear the
	// stale session state when that happens.
	if _, err := s.couponRepo.FindByID(ctx, applied.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if clearErr := s.sessions.ClearCoupon(ctx, sessionID); clearErr != nil {
				return nil, clearErr
			}
			if clearErr := s.sessions.ClearDiscounts(ctx, sessionID); clearErr != nil {
				return nil, clearErr
			}
			return nil, pkgerrors.New(pkgerrors.CodeIntegrity, "coupon no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if err := s.sessions.ClearCoupon(ctx, sessionID); err != nil {
		return nil, err
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	amounts := ComputeAmounts(lines, nil, s.taxPercent)
	if err := s.sessions.SaveDiscounts(ctx, sessionID, amounts); err != nil {
		return nil, err
	}
	return &amounts, nil
}

// SetCheckoutAmounts freezes the current pricing under the checkout field.
// An empty cart clears the checkout state entirely so order placement cannot
// proceed.
func (s *service) SetCheckoutAmounts(ctx context.Context, sessionID string) (*Amounts, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lines, err := s.sessions.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		if err := s.sessions.ClearCheckout(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	coupon, err := s.sessions.Coupon(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	amounts := ComputeAmounts(lines, coupon, s.taxPercent)
	if err := s.sessions.SaveCheckout(ctx, sessionID, amounts); err != nil {
		return nil, err
	}
	return &amounts, nil
}

func (s *service) saveAndPrice(ctx context.Context, sessionID string, lines []Line) (*Content, error) {
	if len(lines) == 0 {
		if err := s.sessions.ClearLines(ctx, sessionID); err != nil {
			return nil, err
		}
	} else if err := s.sessions.SaveLines(ctx, sessionID, lines); err != nil {
		return nil, err
	}

	coupon, err := s.sessions.Coupon(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	amounts := ComputeAmounts(lines, coupon, s.taxPercent)
	if coupon != nil {
		if err := s.sessions.SaveDiscounts(ctx, sessionID, amounts); err != nil {
			return nil, err
		}
	}

	return &Content{
		Lines:   lines,
		Count:   Count(lines),
		Coupon:  coupon,
		Amounts: amounts,
	}, nil
}
