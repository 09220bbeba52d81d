// Package audit keeps a persistent trail of admin actions.
package audit

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"freightdesk/services/support-api/internal/infrastructure/database/dbschema"
)

// Entry describes one admin mutation.
type Entry struct {
	AdminID    string
	AdminEmail string
	Action     string
	ResourceID string
	StatusCode int
	IPAddress  string
	UserAgent  string
}

// Recorder persists entries to the audit_logs table.
type Recorder struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewRecorder(db *gorm.DB, logger zerolog.Logger) *Recorder {
	return &Recorder{db: db, logger: logger}
}

// Record is best-effort. A failed insert is logged and never surfaced
// to the request that triggered it.
func (r *Recorder) Record(ctx context.Context, entry Entry) {
	if r == nil || r.db == nil {
		return
	}

	row := &dbschema.AuditLog{
		AdminID:    entry.AdminID,
		AdminEmail: entry.AdminEmail,
		Action:     entry.Action,
		ResourceID: entry.ResourceID,
		StatusCode: entry.StatusCode,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		r.logger.Warn().Err(err).Str("action", entry.Action).Msg("failed to record admin action")
	}
}
