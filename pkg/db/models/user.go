package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcastellon/shopora-backend/pkg/enums"
)

// User is a storefront account. PasswordHash carries an argon2id hash.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"column:name;not null" json:"name"`
	Email        string     `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.Role `gorm:"column:role;type:text;not null;default:'user'" json:"role"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
