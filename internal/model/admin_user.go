package model

import (
	"time"
)

// PrincipalID is the fixed primary key of the tenant's administrative user
// inside the tenant's own database. Provisioning creates it as the first
// row, so every tenant database carries exactly one principal under this ID.
const PrincipalID uint = 1

// AdminUser mirrors the registry record's status inside the tenant
// database. The toggler keeps both in lockstep; there is no database-level
// constraint tying them together since they live in separate databases.
type AdminUser struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	Active    bool      `json:"active" gorm:"default:true"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the tenant-side table name stable across tenants
func (AdminUser) TableName() string {
	return "admin_users"
}
