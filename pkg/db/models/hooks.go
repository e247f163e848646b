package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys are minted app-side so the schema stays portable between the
// postgres deployment and the sqlite local-dev flag. Hooks leave explicitly
// assigned ids alone.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (m *User) BeforeCreate(tx *gorm.DB) error        { ensureID(&m.ID); return nil }
func (m *Brand) BeforeCreate(tx *gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *Category) BeforeCreate(tx *gorm.DB) error    { ensureID(&m.ID); return nil }
func (m *Product) BeforeCreate(tx *gorm.DB) error     { ensureID(&m.ID); return nil }
func (m *Coupon) BeforeCreate(tx *gorm.DB) error      { ensureID(&m.ID); return nil }
func (m *Address) BeforeCreate(tx *gorm.DB) error     { ensureID(&m.ID); return nil }
func (m *Order) BeforeCreate(tx *gorm.DB) error       { ensureID(&m.ID); return nil }
func (m *OrderItem) BeforeCreate(tx *gorm.DB) error   { ensureID(&m.ID); return nil }
func (m *Transaction) BeforeCreate(tx *gorm.DB) error { ensureID(&m.ID); return nil }
