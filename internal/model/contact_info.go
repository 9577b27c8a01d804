package model

import (
	"time"
)

// ContactInfo is the tenant's published contact record. The first
// non-deleted row is the current one; updates are applied in place and
// rows are never hard-deleted.
type ContactInfo struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(100)"`
	Phone     string    `json:"phone" gorm:"type:varchar(30)"`
	Address   string    `json:"address" gorm:"type:text"`
	City      string    `json:"city" gorm:"type:varchar(100)"`
	Country   string    `json:"country" gorm:"type:varchar(100)"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
