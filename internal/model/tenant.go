package model

import (
	"time"
)

// Tenant lifecycle statuses as stored on the registry record
const (
	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"
)

// Tenant is the central registry record for a client account. One row per
// tenant; the tenant's own data lives in an isolated database reached
// through DBAlias. Status, Active and IsDeleted move together:
// BLOCKED means deleted+inactive, ACTIVE means neither.
type Tenant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TenantID  string    `json:"tenant_id" gorm:"type:varchar(64);uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	DBAlias   string    `json:"db_alias" gorm:"type:varchar(100);not null"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	Active    bool      `json:"active" gorm:"default:false"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Blocked reports whether the registry record currently represents a
// blocked account. The deleted flag is the authoritative signal; status
// is kept in lockstep by the toggler.
func (t *Tenant) Blocked() bool {
	return t.IsDeleted || t.Status == StatusBlocked
}
