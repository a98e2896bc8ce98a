package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// RetentionSummary reports how many rows each sweep removed.
type RetentionSummary struct {
	UserProfiles   int `json:"userProfiles"`
	Invoices       int `json:"invoices"`
	Contracts      int `json:"contracts"`
	SupportTickets int `json:"supportTickets"`
}

// IRetentionService defines the interface for data retention and audit operations.
type IRetentionService interface {
	RunDataRetentionJob(ctx context.Context) (*RetentionSummary, error)
	LogAuditEvent(ctx context.Context, event, userID string, meta map[string]interface{}) error
}

// retentionService implements IRetentionService.
type retentionService struct {
	store *store.Store
	cfg   *config.Config
}

// NewRetentionService creates a new RetentionService.
func NewRetentionService(st *store.Store, cfg *config.Config) IRetentionService {
	return &retentionService{store: st, cfg: cfg}
}

// RunDataRetentionJob deletes rows older than their table's retention window
// and records one audit event per deleted row. The audit row is written
// before the delete; if the delete then fails, the audit row is removed
// again so the log never claims a deletion that did not happen.
func (s *retentionService) RunDataRetentionJob(ctx context.Context) (*RetentionSummary, error) {
	now := time.Now().UTC()
	summary := &RetentionSummary{}

	profileCutoff := now.AddDate(-s.cfg.UserProfileRetentionYears, 0, 0)
	var profiles []models.UserProfile
	if err := s.store.Find(ctx, store.TableUserProfiles, bson.M{"updated_at": bson.M{"$lt": profileCutoff}}, &profiles); err != nil {
		return summary, fmt.Errorf("retention scan of %s failed: %w", store.TableUserProfiles, err)
	}
	for _, p := range profiles {
		if err := s.deleteWithAudit(ctx, store.TableUserProfiles, p.ID, p.ID, nil); err != nil {
			return summary, err
		}
		summary.UserProfiles++
	}

	invoiceCutoff := now.AddDate(-s.cfg.InvoiceRetentionYears, 0, 0)
	var invoices []models.Invoice
	if err := s.store.Find(ctx, store.TableInvoices, bson.M{"created_at": bson.M{"$lt": invoiceCutoff}}, &invoices); err != nil {
		return summary, fmt.Errorf("retention scan of %s failed: %w", store.TableInvoices, err)
	}
	for _, inv := range invoices {
		meta := map[string]interface{}{"invoiceId": inv.ID}
		if err := s.deleteWithAudit(ctx, store.TableInvoices, inv.ID, inv.ClientID, meta); err != nil {
			return summary, err
		}
		summary.Invoices++
	}

	contractCutoff := now.AddDate(-s.cfg.ContractRetentionYears, 0, 0)
	var contracts []models.Contract
	if err := s.store.Find(ctx, store.TableContracts, bson.M{"created_at": bson.M{"$lt": contractCutoff}}, &contracts); err != nil {
		return summary, fmt.Errorf("retention scan of %s failed: %w", store.TableContracts, err)
	}
	for _, c := range contracts {
		meta := map[string]interface{}{"contractId": c.ID}
		if err := s.deleteWithAudit(ctx, store.TableContracts, c.ID, c.SignedBy, meta); err != nil {
			return summary, err
		}
		summary.Contracts++
	}

	ticketCutoff := now.AddDate(-s.cfg.SupportTicketRetentionYears, 0, 0)
	var tickets []models.SupportTicket
	if err := s.store.Find(ctx, store.TableSupportTickets, bson.M{"created_at": bson.M{"$lt": ticketCutoff}}, &tickets); err != nil {
		return summary, fmt.Errorf("retention scan of %s failed: %w", store.TableSupportTickets, err)
	}
	for _, t := range tickets {
		meta := map[string]interface{}{"ticketId": t.ID}
		if err := s.deleteWithAudit(ctx, store.TableSupportTickets, t.ID, t.UserID, meta); err != nil {
			return summary, err
		}
		summary.SupportTickets++
	}

	log.Printf("Retention sweep removed %d profiles, %d invoices, %d contracts, %d tickets",
		summary.UserProfiles, summary.Invoices, summary.Contracts, summary.SupportTickets)
	return summary, nil
}

// deleteWithAudit removes one row and leaves exactly one audit event behind.
// The store commits each call independently, so ordering carries the
// guarantee: audit first, delete second, compensate the audit on failure.
func (s *retentionService) deleteWithAudit(ctx context.Context, table, rowID, userID string, meta map[string]interface{}) error {
	auditMeta := map[string]interface{}{"table": table}
	for k, v := range meta {
		auditMeta[k] = v
	}

	entry := &models.AuditLogEntry{
		Event:     models.AuditEventRetentionDelete,
		UserID:    userID,
		Meta:      auditMeta,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, store.TableAuditLogs, entry); err != nil {
		return fmt.Errorf("audit insert for %s/%s failed: %w", table, rowID, err)
	}

	if _, err := s.store.Delete(ctx, table, bson.M{"_id": rowID}); err != nil {
		if _, compErr := s.store.Delete(ctx, store.TableAuditLogs, bson.M{"_id": entry.ID}); compErr != nil {
			log.Printf("Failed to compensate audit row %s after delete failure: %v", entry.ID, compErr)
		}
		return fmt.Errorf("retention delete of %s/%s failed: %w", table, rowID, err)
	}
	return nil
}

// LogAuditEvent appends one audit log row.
func (s *retentionService) LogAuditEvent(ctx context.Context, event, userID string, meta map[string]interface{}) error {
	entry := &models.AuditLogEntry{
		Event:     event,
		UserID:    userID,
		Meta:      meta,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, store.TableAuditLogs, entry); err != nil {
		return fmt.Errorf("audit insert failed: %w", err)
	}
	return nil
}
