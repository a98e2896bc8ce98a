package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

func newBillingTestService(t *testing.T, dbName string) IBillingService {
	st := setupTestStore(t, dbName, store.TableInvoices, store.TableSubscriptions)
	cfg := &config.Config{InvoiceDueDays: 14, DefaultTaxRate: 0.15}
	return NewBillingService(st, cfg)
}

func TestBillingService_GenerateInvoice(t *testing.T) {
	svc := newBillingTestService(t, "testdb_billing_generate")
	ctx := context.Background()
	clientID := uuid.NewString()

	invoice, err := svc.GenerateInvoice(ctx, GenerateInvoiceInput{
		ClientID: clientID,
		Amount:   1000,
		TaxRate:  0.15,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, invoice.ID)
	assert.Equal(t, clientID, invoice.ClientID)
	assert.Equal(t, 1000.0, invoice.Amount)
	assert.Equal(t, 150.0, invoice.TaxAmount)
	assert.Equal(t, 1150.0, invoice.Total)
	assert.Equal(t, models.InvoiceCurrency, invoice.Currency)
	assert.Equal(t, models.InvoiceStatusPending, invoice.Status)

	wantDue := time.Now().UTC().AddDate(0, 0, 14).Format(DateLayout)
	assert.Equal(t, wantDue, invoice.DueDate)
}

func TestBillingService_GenerateInvoice_CurrencyAlwaysZAR(t *testing.T) {
	svc := newBillingTestService(t, "testdb_billing_currency")
	ctx := context.Background()

	invoice, err := svc.GenerateInvoice(ctx, GenerateInvoiceInput{
		ClientID: uuid.NewString(),
		Amount:   42,
	})
	assert.NoError(t, err)
	assert.Equal(t, "ZAR", invoice.Currency)
	assert.Equal(t, 0.0, invoice.TaxAmount)
	assert.Equal(t, 42.0, invoice.Total)
}

func TestBillingService_GenerateInvoice_RepeatCallsInsertDistinctRows(t *testing.T) {
	st := setupTestStore(t, "testdb_billing_duplicate", store.TableInvoices)
	cfg := &config.Config{InvoiceDueDays: 14}
	svc := NewBillingService(st, cfg)
	ctx := context.Background()

	in := GenerateInvoiceInput{
		ClientID:       uuid.NewString(),
		SubscriptionID: uuid.NewString(),
		Amount:         500,
	}
	first, err := svc.GenerateInvoice(ctx, in)
	assert.NoError(t, err)
	second, err := svc.GenerateInvoice(ctx, in)
	assert.NoError(t, err)

	// Nothing dedupes a billing period: same subscription, two rows.
	assert.NotEqual(t, first.ID, second.ID)
	var rows []models.Invoice
	err = st.Find(ctx, store.TableInvoices, bson.M{"subscription_id": in.SubscriptionID}, &rows)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestBillingService_GetDueSubscriptions(t *testing.T) {
	st := setupTestStore(t, "testdb_billing_due", store.TableSubscriptions)
	cfg := &config.Config{InvoiceDueDays: 14}
	svc := NewBillingService(st, cfg)
	ctx := context.Background()

	today := time.Now().UTC()
	future := today.AddDate(0, 1, 0).Format(DateLayout)
	past := today.AddDate(0, -1, 0).Format(DateLayout)

	insertSub := func(status, endDate string) string {
		sub := &models.Subscription{
			ClientID:  uuid.NewString(),
			PlanID:    "starter",
			Amount:    299,
			Status:    status,
			EndDate:   endDate,
			CreatedAt: today,
		}
		assert.NoError(t, st.Insert(ctx, store.TableSubscriptions, sub))
		return sub.ID
	}

	openEnded := insertSub(models.SubscriptionStatusActive, "")
	running := insertSub(models.SubscriptionStatusActive, future)
	insertSub(models.SubscriptionStatusActive, past)            // ended
	insertSub(models.SubscriptionStatusCancelled, future)       // cancelled
	endsToday := insertSub(models.SubscriptionStatusActive, today.Format(DateLayout))

	due := svc.GetDueSubscriptions(ctx)
	ids := make([]string, 0, len(due))
	for _, s := range due {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{openEnded, running, endsToday}, ids)
}

func TestBillingService_GetOverdueInvoices(t *testing.T) {
	st := setupTestStore(t, "testdb_billing_overdue", store.TableInvoices)
	cfg := &config.Config{InvoiceDueDays: 14}
	svc := NewBillingService(st, cfg)
	ctx := context.Background()

	today := time.Now().UTC()
	insertInvoice := func(status, dueDate string) string {
		inv := &models.Invoice{
			ClientID:  uuid.NewString(),
			Amount:    100,
			Currency:  models.InvoiceCurrency,
			Status:    status,
			DueDate:   dueDate,
			CreatedAt: today,
		}
		assert.NoError(t, st.Insert(ctx, store.TableInvoices, inv))
		return inv.ID
	}

	lapsed := insertInvoice(models.InvoiceStatusPending, today.AddDate(0, 0, -3).Format(DateLayout))
	insertInvoice(models.InvoiceStatusPending, today.AddDate(0, 0, 3).Format(DateLayout)) // not yet due
	insertInvoice(models.InvoiceStatusPending, today.Format(DateLayout))                  // due today is not overdue
	insertInvoice(models.InvoiceStatusPaid, today.AddDate(0, 0, -3).Format(DateLayout))   // settled

	overdue := svc.GetOverdueInvoices(ctx)
	assert.Len(t, overdue, 1)
	assert.Equal(t, lapsed, overdue[0].ID)
}

func TestBillingService_UpdatePaymentStatus_Missing(t *testing.T) {
	svc := newBillingTestService(t, "testdb_billing_update_missing")
	err := svc.UpdatePaymentStatus(context.Background(), uuid.NewString(), "COMPLETE")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestBillingService_UpdateStatuses(t *testing.T) {
	st := setupTestStore(t, "testdb_billing_update", store.TableInvoices, store.TableSubscriptions)
	cfg := &config.Config{InvoiceDueDays: 14}
	svc := NewBillingService(st, cfg)
	ctx := context.Background()

	inv := &models.Invoice{ClientID: uuid.NewString(), Amount: 10, Status: models.InvoiceStatusPending, DueDate: "2026-01-01"}
	assert.NoError(t, st.Insert(ctx, store.TableInvoices, inv))
	sub := &models.Subscription{ClientID: inv.ClientID, Status: models.SubscriptionStatusActive}
	assert.NoError(t, st.Insert(ctx, store.TableSubscriptions, sub))

	assert.NoError(t, svc.UpdatePaymentStatus(ctx, inv.ID, "COMPLETE"))
	status, err := svc.GetInvoiceStatus(ctx, inv.ID)
	assert.NoError(t, err)
	assert.Equal(t, "COMPLETE", status)

	assert.NoError(t, svc.UpdateSubscriptionStatus(ctx, sub.ID, models.SubscriptionStatusCancelled))
	var got models.Subscription
	assert.NoError(t, st.FindOne(ctx, store.TableSubscriptions, bson.M{"_id": sub.ID}, &got))
	assert.Equal(t, models.SubscriptionStatusCancelled, got.Status)
}

func TestBillingService_GetInvoiceAnalytics(t *testing.T) {
	st := setupTestStore(t, "testdb_billing_analytics", store.TableInvoices)
	cfg := &config.Config{InvoiceDueDays: 14}
	svc := NewBillingService(st, cfg)
	ctx := context.Background()

	today := time.Now().UTC()
	rows := []struct {
		amount  float64
		status  string
		dueDate string
	}{
		{1000, models.InvoiceStatusPaid, today.AddDate(0, 0, -10).Format(DateLayout)},
		{500, models.InvoiceStatusPending, today.AddDate(0, 0, -5).Format(DateLayout)}, // overdue
		{250, models.InvoiceStatusPending, today.AddDate(0, 0, 5).Format(DateLayout)},
	}
	for _, r := range rows {
		inv := &models.Invoice{ClientID: uuid.NewString(), Amount: r.amount, Status: r.status, DueDate: r.dueDate, CreatedAt: today}
		assert.NoError(t, st.Insert(ctx, store.TableInvoices, inv))
	}

	analytics, err := svc.GetInvoiceAnalytics(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1750.0, analytics.TotalInvoiced)
	assert.Equal(t, 1000.0, analytics.TotalPaid)
	assert.Equal(t, 1, analytics.OverdueCount)
	assert.LessOrEqual(t, analytics.TotalPaid, analytics.TotalInvoiced)
}
