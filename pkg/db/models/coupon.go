package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/pkg/enums"
)

// Coupon is a discount code. CartValue is the minimum cart subtotal required
// before the coupon may be applied; a coupon is active while
// expiry_date >= today.
type Coupon struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Code       string           `gorm:"column:code;not null;uniqueIndex" json:"code"`
	Type       enums.CouponType `gorm:"column:type;type:text;not null" json:"type"`
	Value      decimal.Decimal  `gorm:"column:value;type:numeric(12,2);not null" json:"value"`
	CartValue  decimal.Decimal  `gorm:"column:cart_value;type:numeric(12,2);not null" json:"cart_value"`
	ExpiryDate time.Time        `gorm:"column:expiry_date;not null" json:"expiry_date"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
