package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/pkg/enums"
	pkgerrors "github.com/mcastellon/shopora-backend/pkg/errors"
)

// Session field names under the shopora:session:<sid>: namespace.
const (
	fieldCart      = "cart"
	fieldCoupon    = "coupon"
	fieldDiscounts = "discounts"
	fieldCheckout  = "checkout"
	fieldOrderID   = "order_id"
)

// Line is one cart entry. Price is snapshot at add time and never refreshed
// from the catalog.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	Image     string          `json:"image,omitempty"`
}

// AppliedCoupon is the session snapshot of a coupon at apply time.
type AppliedCoupon struct {
	ID        uuid.UUID        `json:"id"`
	Code      string           `json:"code"`
	Type      enums.CouponType `json:"type"`
	Value     decimal.Decimal  `json:"value"`
	CartValue decimal.Decimal  `json:"cart_value"`
	AppliedAt time.Time        `json:"applied_at"`
}

// Amounts is the priced snapshot stored under the discounts and checkout
// session fields.
type Amounts struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type kvStore interface {
	SessionKey(sessionID, field string) string
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Del(ctx context.Context, keys ...string) error
}

// SessionStore persists per-session cart state in the key-value backend.
// Every write refreshes the session TTL.
type SessionStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewSessionStore builds a session store over the provided backend.
func NewSessionStore(kv kvStore, ttl time.Duration) (*SessionStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &SessionStore{kv: kv, ttl: ttl}, nil
}

// Lines returns the session's cart lines; an absent key is an empty cart.
func (s *SessionStore) Lines(ctx context.Context, sessionID string) ([]Line, error) {
	var lines []Line
	found, err := s.getJSON(ctx, sessionID, fieldCart, &lines)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return lines, nil
}

// SaveLines replaces the session's cart lines.
func (s *SessionStore) SaveLines(ctx context.Context, sessionID string, lines []Line) error {
	return s.setJSON(ctx, sessionID, fieldCart, lines)
}

// ClearLines removes the session's cart.
func (s *SessionStore) ClearLines(ctx context.Context, sessionID string) error {
	return s.del(ctx, sessionID, fieldCart)
}

// Coupon returns the applied coupon snapshot, nil when none is applied.
func (s *SessionStore) Coupon(ctx context.Context, sessionID string) (*AppliedCoupon, error) {
	var snapshot AppliedCoupon
	found, err := s.getJSON(ctx, sessionID, fieldCoupon, &snapshot)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &snapshot, nil
}

// SaveCoupon stores the applied coupon snapshot.
func (s *SessionStore) SaveCoupon(ctx context.Context, sessionID string, snapshot AppliedCoupon) error {
	return s.setJSON(ctx, sessionID, fieldCoupon, snapshot)
}

// ClearCoupon removes the applied coupon snapshot.
func (s *SessionStore) ClearCoupon(ctx context.Context, sessionID string) error {
	return s.del(ctx, sessionID, fieldCoupon)
}

// Discounts returns the priced snapshot recomputed on cart/coupon changes.
func (s *SessionStore) Discounts(ctx context.Context, sessionID string) (*Amounts, error) {
	var amounts Amounts
	found, err := s.getJSON(ctx, sessionID, fieldDiscounts, &amounts)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &amounts, nil
}

// SaveDiscounts stores the priced snapshot.
func (s *SessionStore) SaveDiscounts(ctx context.Context, sessionID string, amounts Amounts) error {
	return s.setJSON(ctx, sessionID, fieldDiscounts, amounts)
}

// ClearDiscounts removes the priced snapshot.
func (s *SessionStore) ClearDiscounts(ctx context.Context, sessionID string) error {
	return s.del(ctx, sessionID, fieldDiscounts)
}

// Checkout returns the frozen checkout amounts, nil when not staged.
func (s *SessionStore) Checkout(ctx context.Context, sessionID string) (*Amounts, error) {
	var amounts Amounts
	found, err := s.getJSON(ctx, sessionID, fieldCheckout, &amounts)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &amounts, nil
}

// SaveCheckout stores the frozen checkout amounts.
func (s *SessionStore) SaveCheckout(ctx context.Context, sessionID string, amounts Amounts) error {
	return s.setJSON(ctx, sessionID, fieldCheckout, amounts)
}

// ClearCheckout removes the frozen checkout amounts.
func (s *SessionStore) ClearCheckout(ctx context.Context, sessionID string) error {
	return s.del(ctx, sessionID, fieldCheckout)
}

// OrderID returns the last placed order id for confirmation display.
func (s *SessionStore) OrderID(ctx context.Context, sessionID string) (uuid.UUID, bool, error) {
	raw, found, err := s.kv.Get(ctx, s.kv.SessionKey(sessionID, fieldOrderID))
	if err != nil {
		return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session order id")
	}
	if !found {
		return uuid.Nil, false, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "malformed session order id")
	}
	return id, true, nil
}

// SaveOrderID records the last placed order id.
func (s *SessionStore) SaveOrderID(ctx context.Context, sessionID string, orderID uuid.UUID) error {
	key := s.kv.SessionKey(sessionID, fieldOrderID)
	if err := s.kv.Set(ctx, key, orderID.String(), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write session order id")
	}
	return nil
}

// ClearPricing removes cart, coupon, discounts and checkout state in one
// sweep; used after an order is placed or the cart is emptied.
func (s *SessionStore) ClearPricing(ctx context.Context, sessionID string) error {
	keys := []string{
		s.kv.SessionKey(sessionID, fieldCart),
		s.kv.SessionKey(sessionID, fieldCoupon),
		s.kv.SessionKey(sessionID, fieldDiscounts),
		s.kv.SessionKey(sessionID, fieldCheckout),
	}
	if err := s.kv.Del(ctx, keys...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session pricing state")
	}
	return nil
}

func (s *SessionStore) getJSON(ctx context.Context, sessionID, field string, dest any) (bool, error) {
	raw, found, err := s.kv.Get(ctx, s.kv.SessionKey(sessionID, field))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session "+field)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "decode session "+field)
	}
	return true, nil
}

func (s *SessionStore) setJSON(ctx context.Context, sessionID, field string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session "+field)
	}
	if err := s.kv.Set(ctx, s.kv.SessionKey(sessionID, field), string(encoded), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write session "+field)
	}
	return nil
}

func (s *SessionStore) del(ctx context.Context, sessionID, field string) error {
	if err := s.kv.Del(ctx, s.kv.SessionKey(sessionID, field)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session "+field)
	}
	return nil
}
