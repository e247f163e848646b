package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/pkg/enums"
)

// Order is immutable once created except for Status, DeliveredDate and
// CanceledDate. The shipping address fields are a denormalized copy taken at
// purchase time, never a reference to the user's address row.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Subtotal      decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	Discount      decimal.Decimal   `gorm:"column:discount;type:numeric(12,2);not null" json:"discount"`
	Tax           decimal.Decimal   `gorm:"column:tax;type:numeric(12,2);not null" json:"tax"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Name          string            `gorm:"column:name;not null" json:"name"`
	Phone         string            `gorm:"column:phone;not null" json:"phone"`
	Locality      string            `gorm:"column:locality;not null" json:"locality"`
	Address       string            `gorm:"column:address;not null" json:"address"`
	City          string            `gorm:"column:city;not null" json:"city"`
	State         string            `gorm:"column:state;not null" json:"state"`
	Country       string            `gorm:"column:country" json:"country"`
	Landmark      string            `gorm:"column:landmark;not null" json:"landmark"`
	Zip           string            `gorm:"column:zip;not null" json:"zip"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	DeliveredDate *time.Time        `gorm:"column:delivered_date" json:"delivered_date"`
	CanceledDate  *time.Time        `gorm:"column:canceled_date" json:"canceled_date"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Transaction   *Transaction      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"transaction,omitempty"`
	User          *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
