package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// ErrInvalidImport is returned when an import payload is missing the
// mandatory users and clients sections.
var ErrInvalidImport = errors.New("import data must include users and clients")

// AdminExport is the full-database export produced for administrators.
type AdminExport struct {
	Users     []models.UserProfile   `json:"users"`
	Clients   []models.Client        `json:"clients"`
	Invoices  []models.Invoice       `json:"invoices"`
	Contracts []models.Contract      `json:"contracts"`
	Tickets   []models.SupportTicket `json:"tickets"`
}

// UserExport is the per-user export for POPIA data access requests.
type UserExport struct {
	Profile   *models.UserProfile    `json:"profile"`
	Client    *models.Client         `json:"client"`
	Invoices  []models.Invoice       `json:"invoices"`
	Contracts []models.Contract      `json:"contracts"`
	Tickets   []models.SupportTicket `json:"tickets"`
}

// UserData is the POPIA access-request view: profile plus client record.
type UserData struct {
	Profile *models.UserProfile `json:"profile"`
	Client  *models.Client      `json:"client"`
}

// IExportService defines the interface for data export, import and
// POPIA data-rights operations.
type IExportService interface {
	ExportAll(ctx context.Context, requestedBy string) (*AdminExport, error)
	ExportUser(ctx context.Context, userID string) (*UserExport, error)
	ImportAll(ctx context.Context, data *AdminExport, importedBy string) error
	GetUserData(ctx context.Context, userID string) (*UserData, error)
	UpdateUserData(ctx context.Context, userID string, updates map[string]interface{}) error
	DeleteUserData(ctx context.Context, userID string) error
}

// exportService implements IExportService.
type exportService struct {
	store *store.Store
	audit IRetentionService
}

// NewExportService creates a new ExportService. Audit events go through the
// retention service, which owns the audit log.
func NewExportService(st *store.Store, audit IRetentionService) IExportService {
	return &exportService{store: st, audit: audit}
}

// ExportAll dumps every portal table. Admin only; the handler enforces that.
func (s *exportService) ExportAll(ctx context.Context, requestedBy string) (*AdminExport, error) {
	out := &AdminExport{}
	if err := s.store.Find(ctx, store.TableUserProfiles, bson.M{}, &out.Users); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableUserProfiles, err)
	}
	if err := s.store.Find(ctx, store.TableClients, bson.M{}, &out.Clients); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableClients, err)
	}
	if err := s.store.Find(ctx, store.TableInvoices, bson.M{}, &out.Invoices); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableInvoices, err)
	}
	if err := s.store.Find(ctx, store.TableContracts, bson.M{}, &out.Contracts); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableContracts, err)
	}
	if err := s.store.Find(ctx, store.TableSupportTickets, bson.M{}, &out.Tickets); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableSupportTickets, err)
	}

	if err := s.audit.LogAuditEvent(ctx, models.AuditEventDataExport, requestedBy, map[string]interface{}{"all": true}); err != nil {
		log.Printf("Failed to log export audit event: %v", err)
	}
	return out, nil
}

// ExportUser collects one user's rows across the portal tables. The client
// record links the user to their invoices; a user with no client record
// simply exports no invoices.
func (s *exportService) ExportUser(ctx context.Context, userID string) (*UserExport, error) {
	out := &UserExport{}

	var profile models.UserProfile
	if err := s.store.FindOne(ctx, store.TableUserProfiles, bson.M{"_id": userID}, &profile); err == nil {
		out.Profile = &profile
	}

	clientID := ""
	var client models.Client
	if err := s.store.FindOne(ctx, store.TableClients, bson.M{"user_id": userID}, &client); err == nil {
		out.Client = &client
		clientID = client.ID
	}

	if err := s.store.Find(ctx, store.TableInvoices, bson.M{"client_id": clientID}, &out.Invoices); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableInvoices, err)
	}
	if err := s.store.Find(ctx, store.TableContracts, bson.M{"signed_by": userID}, &out.Contracts); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableContracts, err)
	}
	if err := s.store.Find(ctx, store.TableSupportTickets, bson.M{"user_id": userID}, &out.Tickets); err != nil {
		return nil, fmt.Errorf("export of %s failed: %w", store.TableSupportTickets, err)
	}

	if err := s.audit.LogAuditEvent(ctx, models.AuditEventDataExport, userID, map[string]interface{}{"all": false}); err != nil {
		log.Printf("Failed to log export audit event: %v", err)
	}
	return out, nil
}

// ImportAll upserts an export payload back into the store. Users and
// clients are mandatory; repeated imports of the same payload converge on
// the same rows.
func (s *exportService) ImportAll(ctx context.Context, data *AdminExport, importedBy string) error {
	if len(data.Users) == 0 || len(data.Clients) == 0 {
		return ErrInvalidImport
	}

	for i := range data.Users {
		u := &data.Users[i]
		u.GenIDIfEmpty()
		if err := s.store.Upsert(ctx, store.TableUserProfiles, bson.M{"_id": u.ID}, u); err != nil {
			return fmt.Errorf("import of %s failed: %w", store.TableUserProfiles, err)
		}
	}
	for i := range data.Clients {
		c := &data.Clients[i]
		c.GenIDIfEmpty()
		if err := s.store.Upsert(ctx, store.TableClients, bson.M{"_id": c.ID}, c); err != nil {
			return fmt.Errorf("import of %s failed: %w", store.TableClients, err)
		}
	}
	for i := range data.Invoices {
		inv := &data.Invoices[i]
		inv.GenIDIfEmpty()
		if err := s.store.Upsert(ctx, store.TableInvoices, bson.M{"_id": inv.ID}, inv); err != nil {
			return fmt.Errorf("import of %s failed: %w", store.TableInvoices, err)
		}
	}
	for i := range data.Contracts {
		c := &data.Contracts[i]
		c.GenIDIfEmpty()
		if err := s.store.Upsert(ctx, store.TableContracts, bson.M{"_id": c.ID}, c); err != nil {
			return fmt.Errorf("import of %s failed: %w", store.TableContracts, err)
		}
	}
	for i := range data.Tickets {
		t := &data.Tickets[i]
		t.GenIDIfEmpty()
		if err := s.store.Upsert(ctx, store.TableSupportTickets, bson.M{"_id": t.ID}, t); err != nil {
			return fmt.Errorf("import of %s failed: %w", store.TableSupportTickets, err)
		}
	}

	count := len(data.Users) + len(data.Clients) + len(data.Invoices) + len(data.Contracts) + len(data.Tickets)
	if err := s.audit.LogAuditEvent(ctx, models.AuditEventDataImport, importedBy, map[string]interface{}{"count": count}); err != nil {
		log.Printf("Failed to log import audit event: %v", err)
	}
	return nil
}

// GetUserData returns the POPIA access-request view of one user.
func (s *exportService) GetUserData(ctx context.Context, userID string) (*UserData, error) {
	out := &UserData{}

	var profile models.UserProfile
	if err := s.store.FindOne(ctx, store.TableUserProfiles, bson.M{"_id": userID}, &profile); err == nil {
		out.Profile = &profile
	}
	var client models.Client
	if err := s.store.FindOne(ctx, store.TableClients, bson.M{"user_id": userID}, &client); err == nil {
		out.Client = &client
	}
	if out.Profile == nil && out.Client == nil {
		return nil, fmt.Errorf("no data held for user %s", userID)
	}
	return out, nil
}

// UpdateUserData applies a partial update to the user's profile and client
// rows. The same field set goes to both tables; the store sets any field it
// is given, on either row, so the handler strips protected fields before
// they reach this call. The call only fails when both updates fail.
func (s *exportService) UpdateUserData(ctx context.Context, userID string, updates map[string]interface{}) error {
	set := bson.M{}
	for k, v := range updates {
		set[k] = v
	}

	_, profileErr := s.store.Update(ctx, store.TableUserProfiles, bson.M{"_id": userID}, set)
	_, clientErr := s.store.Update(ctx, store.TableClients, bson.M{"user_id": userID}, set)
	if profileErr != nil && clientErr != nil {
		return fmt.Errorf("user data update failed: %w", profileErr)
	}
	return nil
}

// DeleteUserData erases a user's profile and client rows for a POPIA
// deletion request.
func (s *exportService) DeleteUserData(ctx context.Context, userID string) error {
	if _, err := s.store.Delete(ctx, store.TableUserProfiles, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("user data deletion failed: %w", err)
	}
	if _, err := s.store.Delete(ctx, store.TableClients, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("user data deletion failed: %w", err)
	}
	return nil
}
