package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcastellon/shopora-backend/pkg/enums"
)

// Transaction is the one-to-one payment record for an order. Status moves to
// approved only when the owning order is marked delivered.
type Transaction struct {
	ID        uuid.UUID               `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID               `gorm:"column:user_id;type:uuid;not null" json:"user_id"`
	OrderID   uuid.UUID               `gorm:"column:order_id;type:uuid;not null;uniqueIndex" json:"order_id"`
	Mode      string                  `gorm:"column:mode;not null" json:"mode"`
	Status    enums.TransactionStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	CreatedAt time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
