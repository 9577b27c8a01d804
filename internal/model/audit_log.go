package model

import (
	"time"
)

// AuditLog records administrative actions: who did what, with the request
// metadata needed to trace it back.
type AuditLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Actor       string    `json:"actor" gorm:"type:varchar(100);index"`
	Action      string    `json:"action" gorm:"type:varchar(50);index"`
	Description string    `json:"description" gorm:"type:text"`
	RequestID   string    `json:"request_id" gorm:"type:varchar(64)"`
	IP          string    `json:"ip" gorm:"type:varchar(45)"`
	CreatedAt   time.Time `json:"created_at"`
}
