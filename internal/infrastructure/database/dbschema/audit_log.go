package dbschema

import (
	"freightdesk/services/support-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(AuditLog{})
}

// AuditLog records one admin mutation for the support trail.
type AuditLog struct {
	BaseModel
	AdminID    string `gorm:"type:varchar(50);not null;index:idx_audit_admin"`
	AdminEmail string `gorm:"type:varchar(320);not null;default:''"`
	Action     string `gorm:"type:varchar(120);not null"`
	ResourceID string `gorm:"type:varchar(50);not null;default:''"`
	StatusCode int    `gorm:"not null"`
	IPAddress  string `gorm:"type:varchar(45);not null;default:''"`
	UserAgent  string `gorm:"type:varchar(512);not null;default:''"`
}
