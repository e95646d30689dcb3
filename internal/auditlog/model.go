package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one admin mutation with free-form JSON details
type AuditLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Action    string         `gorm:"type:varchar(100);not null;index" json:"action"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details"`
	IPAddress string         `gorm:"type:varchar(64)" json:"ip_address"`
	Status    string         `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}
