package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

func exportTestTables() []string {
	return []string{
		store.TableUserProfiles, store.TableClients, store.TableInvoices,
		store.TableContracts, store.TableSupportTickets, store.TableAuditLogs,
	}
}

func seedUserWithClient(t *testing.T, st *store.Store) (string, string) {
	t.Helper()
	ctx := context.Background()
	profile := &models.UserProfile{
		Email:     "owner@example.co.za",
		FullName:  "Thandi Owner",
		Role:      models.RoleClient,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	assert.NoError(t, st.Insert(ctx, store.TableUserProfiles, profile))
	client := &models.Client{
		UserID:      profile.ID,
		CompanyName: "Mzansi Bakery",
		CreatedAt:   time.Now().UTC(),
	}
	assert.NoError(t, st.Insert(ctx, store.TableClients, client))
	return profile.ID, client.ID
}

func TestExportService_ExportUser(t *testing.T) {
	st := setupTestStore(t, "testdb_export_user", exportTestTables()...)
	svc := NewExportService(st, NewRetentionService(st, retentionTestConfig()))
	ctx := context.Background()

	userID, clientID := seedUserWithClient(t, st)
	ownInvoice := &models.Invoice{ClientID: clientID, Amount: 100, Status: models.InvoiceStatusPending, DueDate: "2026-10-01", CreatedAt: time.Now().UTC()}
	assert.NoError(t, st.Insert(ctx, store.TableInvoices, ownInvoice))
	otherInvoice := &models.Invoice{ClientID: uuid.NewString(), Amount: 999, Status: models.InvoiceStatusPending, DueDate: "2026-10-01", CreatedAt: time.Now().UTC()}
	assert.NoError(t, st.Insert(ctx, store.TableInvoices, otherInvoice))

	data, err := svc.ExportUser(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, data.Profile.ID)
	assert.Equal(t, clientID, data.Client.ID)
	assert.Len(t, data.Invoices, 1)
	assert.Equal(t, ownInvoice.ID, data.Invoices[0].ID)

	// The export itself is audited.
	var audits []models.AuditLogEntry
	assert.NoError(t, st.Find(ctx, store.TableAuditLogs, bson.M{"event": models.AuditEventDataExport}, &audits))
	assert.Len(t, audits, 1)
	assert.Equal(t, false, audits[0].Meta["all"])
}

func TestExportService_ImportAll_Validation(t *testing.T) {
	st := setupTestStore(t, "testdb_import_validation", exportTestTables()...)
	svc := NewExportService(st, NewRetentionService(st, retentionTestConfig()))

	err := svc.ImportAll(context.Background(), &AdminExport{}, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidImport)

	err = svc.ImportAll(context.Background(), &AdminExport{
		Users: []models.UserProfile{{Email: "a@b.co.za"}},
	}, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidImport)
}

func TestExportService_ImportAll_RoundTripIdempotent(t *testing.T) {
	st := setupTestStore(t, "testdb_import_roundtrip", exportTestTables()...)
	retention := NewRetentionService(st, retentionTestConfig())
	svc := NewExportService(st, retention)
	ctx := context.Background()

	adminID := uuid.NewString()
	userID, clientID := seedUserWithClient(t, st)
	inv := &models.Invoice{ClientID: clientID, Amount: 100, Status: models.InvoiceStatusPending, DueDate: "2026-10-01", CreatedAt: time.Now().UTC()}
	assert.NoError(t, st.Insert(ctx, store.TableInvoices, inv))

	data, err := svc.ExportAll(ctx, adminID)
	assert.NoError(t, err)
	assert.Len(t, data.Users, 1)
	assert.Len(t, data.Clients, 1)
	assert.Len(t, data.Invoices, 1)

	// Importing the same payload twice converges on the same rows.
	assert.NoError(t, svc.ImportAll(ctx, data, adminID))
	assert.NoError(t, svc.ImportAll(ctx, data, adminID))

	var users []models.UserProfile
	assert.NoError(t, st.Find(ctx, store.TableUserProfiles, bson.M{}, &users))
	assert.Len(t, users, 1)
	assert.Equal(t, userID, users[0].ID)

	var invoices []models.Invoice
	assert.NoError(t, st.Find(ctx, store.TableInvoices, bson.M{}, &invoices))
	assert.Len(t, invoices, 1)
}

func TestExportService_UserDataRights(t *testing.T) {
	st := setupTestStore(t, "testdb_user_data_rights", exportTestTables()...)
	svc := NewExportService(st, NewRetentionService(st, retentionTestConfig()))
	ctx := context.Background()

	userID, _ := seedUserWithClient(t, st)

	data, err := svc.GetUserData(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, "Mzansi Bakery", data.Client.CompanyName)

	assert.NoError(t, svc.UpdateUserData(ctx, userID, map[string]interface{}{"phone": "+27 82 000 0000"}))
	data, err = svc.GetUserData(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, "+27 82 000 0000", data.Client.Phone)

	assert.NoError(t, svc.DeleteUserData(ctx, userID))
	_, err = svc.GetUserData(ctx, userID)
	assert.Error(t, err)
}
