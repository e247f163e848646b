package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is a user shipping address. At most one address per user carries
// IsDefault; checkout copies the chosen address into the order.
type Address struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone;not null" json:"phone"`
	Locality  string    `gorm:"column:locality;not null" json:"locality"`
	Address   string    `gorm:"column:address;not null" json:"address"`
	City      string    `gorm:"column:city;not null" json:"city"`
	State     string    `gorm:"column:state;not null" json:"state"`
	Country   string    `gorm:"column:country" json:"country"`
	Landmark  string    `gorm:"column:landmark;not null" json:"landmark"`
	Zip       string    `gorm:"column:zip;not null" json:"zip"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
