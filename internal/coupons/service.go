package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mcastellon/shopora-backend/pkg/db"
	"github.com/mcastellon/shopora-backend/pkg/db/models"
	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
	"github.com/mcastellon/shopora-backend/pkg/pagination"
)

// Repository defines the persistence surface required by the coupon service.
type Repository interface {
	List(ctx context.Context, offset, limit int) ([]models.Coupon, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	FindActiveByCode(ctx context.Context, code string, today time.Time) (*models.Coupon, error)
	Create(ctx context.Context, row *models.Coupon) (*models.Coupon, error)
	Update(ctx context.Context, row *models.Coupon) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes coupon administration and validation.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]models.Coupon, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	Create(ctx context.Context, input Input) (*models.Coupon, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Coupon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Validate(ctx context.Context, code string, cartTotal decimal.Decimal, today time.Time) (*Validation, error)
}

type service struct {
	repo Repository
}

// NewService builds a coupon service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo}, nil
}

// Input carries the fields accepted when creating or updating a coupon.
type Input struct {
	Code       string
	Type       string
	Value      decimal.Decimal
	CartValue  decimal.Decimal
	ExpiryDate time.Time
}

// Validation reports what a coupon would do against a supplied cart total.
type Validation struct {
	Coupon   models.Coupon   `json:"coupon"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Coupon, int64, error) {
	rows, total, err := s.repo.List(ctx, params.Offset(), params.Limit())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return rows, total, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	row := &models.Coupon{
		Code:       input.Code,
		Type:       enums.CouponType(input.Type),
		Value:      input.Value,
		CartValue:  input.CartValue,
		ExpiryDate: input.ExpiryDate,
	}

	created, err := s.repo.Create(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create coupon")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	row.Code = input.Code
	row.Type = enums.CouponType(input.Type)
	row.Value = input.Value
	row.CartValue = input.CartValue
	row.ExpiryDate = input.ExpiryDate

	updated, err := s.repo.Update(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "coupon code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update coupon")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

func (s *service) Validate(ctx context.Context, code string, cartTotal decimal.Decimal, today time.Time) (*Validation, error) {
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if cartTotal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart total must be non-negative")
	}

	row, err := s.repo.FindActiveByCode(ctx, code, StartOfDay(today))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon is invalid or expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	if cartTotal.LessThan(row.CartValue) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cart total must be at least %s to use this coupon", row.CartValue.StringFixed(2))).
			WithDetails(map[string]string{"minimum": row.CartValue.StringFixed(2)})
	}

	discount := DiscountFor(row, cartTotal)
	return &Validation{
		Coupon:   *row,
		Discount: discount,
		Total:    cartTotal.Sub(discount),
	}, nil
}

// StartOfDay truncates an instant to midnight UTC. Expiry dates are stored
// at midnight, so a coupon expiring today stays usable for the whole day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DiscountFor computes the discount a coupon yields on a subtotal:
// fixed coupons take min(value, subtotal); percent coupons take
// subtotal*value/100 clamped to the subtotal.
func DiscountFor(coupon *models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch coupon.Type {
	case enums.CouponTypeFixed:
		discount = coupon.Value
	case enums.CouponTypePercent:
		discount = subtotal.Mul(coupon.Value).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

func validateInput(input Input) error {
	details := map[string]string{}
	if input.Code == "" {
		details["code"] = "is required"
	}
	if !enums.CouponType(input.Type).IsValid() {
		details["type"] = "must be one of fixed percent"
	}
	if input.Value.IsNegative() {
		details["value"] = "must be non-negative"
	}
	if input.CartValue.IsNegative() {
		details["cart_value"] = "must be non-negative"
	}
	if input.ExpiryDate.IsZero() {
		details["expiry_date"] = "is required"
	} else if input.ExpiryDate.Before(StartOfDay(time.Now())) {
		details["expiry_date"] = "must be today or later"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
