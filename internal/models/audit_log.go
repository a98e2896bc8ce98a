package models

import (
	"time"
)

// Audit event names written by this core.
const (
	AuditEventRetentionDelete = "data_retention_delete"
	AuditEventDataExport      = "data_export"
	AuditEventDataImport      = "data_import"
	AuditEventAnalyticsReport = "analytics_report"
)

// AuditLogEntry is an append-only record of a compliance-relevant action.
type AuditLogEntry struct {
	Base      `bson:",inline"`
	Event     string                 `bson:"event" json:"event"`
	UserID    string                 `bson:"user_id" json:"user_id"`
	Meta      map[string]interface{} `bson:"meta,omitempty" json:"meta,omitempty"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
}
