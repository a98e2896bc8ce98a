package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// DateLayout is the wire format for due_date and end_date columns.
const DateLayout = "2006-01-02"

// GenerateInvoiceInput carries the fields accepted by invoice generation.
// Currency is deliberately absent: invoices are always issued in ZAR.
type GenerateInvoiceInput struct {
	ClientID       string
	SubscriptionID string
	PlanID         string
	Amount         float64
	TaxRate        float64
	DueDate        string // YYYY-MM-DD; defaulted from config when empty
	Status         string // defaulted to pending when empty
	Notes          string
	TemplateID     string
	CustomFields   map[string]interface{}
}

// InvoiceAnalytics aggregates the invoices table.
type InvoiceAnalytics struct {
	TotalInvoiced float64 `json:"totalInvoiced"`
	TotalPaid     float64 `json:"totalPaid"`
	OverdueCount  int     `json:"overdueCount"`
}

// IBillingService defines the interface for billing operations.
type IBillingService interface {
	GetDueSubscriptions(ctx context.Context) []models.Subscription
	GenerateInvoice(ctx context.Context, in GenerateInvoiceInput) (*models.Invoice, error)
	GetOverdueInvoices(ctx context.Context) []models.Invoice
	GetInvoiceStatus(ctx context.Context, invoiceID string) (string, error)
	UpdatePaymentStatus(ctx context.Context, invoiceID, status string) error
	UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error
	GetInvoiceAnalytics(ctx context.Context) (*InvoiceAnalytics, error)
}

// billingService implements IBillingService.
type billingService struct {
	store *store.Store
	cfg   *config.Config
}

// NewBillingService creates a new BillingService.
func NewBillingService(st *store.Store, cfg *config.Config) IBillingService {
	return &billingService{store: st, cfg: cfg}
}

// GetDueSubscriptions returns active subscriptions whose end date has not
// passed. A query failure yields an empty slice so a bad read surfaces as
// "nothing due" in the scheduler rather than a crash.
func (s *billingService) GetDueSubscriptions(ctx context.Context) []models.Subscription {
	today := time.Now().UTC().Format(DateLayout)
	filter := bson.M{
		"status": models.SubscriptionStatusActive,
		"$or": []bson.M{
			{"end_date": bson.M{"$in": bson.A{"", nil}}},
			{"end_date": bson.M{"$gte": today}},
		},
	}

	var subs []models.Subscription
	if err := s.store.Find(ctx, store.TableSubscriptions, filter, &subs); err != nil {
		log.Printf("Error fetching due subscriptions: %v", err)
		return nil
	}
	return subs
}

// GenerateInvoice computes tax and total, forces the currency to ZAR and
// inserts one invoice row. Repeated calls for the same subscription insert
// distinct rows; nothing dedupes a billing period.
func (s *billingService) GenerateInvoice(ctx context.Context, in GenerateInvoiceInput) (*models.Invoice, error) {
	taxAmount := in.Amount * in.TaxRate
	total := in.Amount + taxAmount

	status := in.Status
	if status == "" {
		status = models.InvoiceStatusPending
	}

	now := time.Now().UTC()
	dueDate := in.DueDate
	if dueDate == "" {
		dueDate = now.AddDate(0, 0, s.cfg.InvoiceDueDays).Format(DateLayout)
	}

	invoice := &models.Invoice{
		ClientID:       in.ClientID,
		SubscriptionID: in.SubscriptionID,
		PlanID:         in.PlanID,
		Amount:         in.Amount,
		TaxRate:        in.TaxRate,
		TaxAmount:      taxAmount,
		Total:          total,
		Currency:       models.InvoiceCurrency,
		Status:         status,
		DueDate:        dueDate,
		Notes:          in.Notes,
		TemplateID:     in.TemplateID,
		CustomFields:   in.CustomFields,
		CreatedAt:      now,
	}

	if err := s.store.Insert(ctx, store.TableInvoices, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice for client %s: %w", in.ClientID, err)
	}
	return invoice, nil
}

// GetOverdueInvoices returns pending invoices whose due date has passed.
// Query failures yield an empty slice, logged only.
func (s *billingService) GetOverdueInvoices(ctx context.Context) []models.Invoice {
	today := time.Now().UTC().Format(DateLayout)
	filter := bson.M{
		"status":   models.InvoiceStatusPending,
		"due_date": bson.M{"$lt": today},
	}

	var invoices []models.Invoice
	if err := s.store.Find(ctx, store.TableInvoices, filter, &invoices); err != nil {
		log.Printf("Error fetching overdue invoices: %v", err)
		return nil
	}
	return invoices
}

// GetInvoiceStatus reads the status field of a single invoice.
func (s *billingService) GetInvoiceStatus(ctx context.Context, invoiceID string) (string, error) {
	var invoice models.Invoice
	if err := s.store.FindOne(ctx, store.TableInvoices, bson.M{"_id": invoiceID}, &invoice); err != nil {
		return "", fmt.Errorf("failed to fetch status for invoice %s: %w", invoiceID, err)
	}
	return invoice.Status, nil
}

// UpdatePaymentStatus sets an invoice's status. The status value comes from
// the payment gateway and is stored as-is.
func (s *billingService) UpdatePaymentStatus(ctx context.Context, invoiceID, status string) error {
	matched, err := s.store.Update(ctx, store.TableInvoices, bson.M{"_id": invoiceID}, bson.M{"status": status})
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	if matched == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// UpdateSubscriptionStatus sets a subscription's status.
func (s *billingService) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error {
	matched, err := s.store.Update(ctx, store.TableSubscriptions, bson.M{"_id": subscriptionID}, bson.M{"status": status})
	if err != nil {
		return fmt.Errorf("failed to update status of subscription %s: %w", subscriptionID, err)
	}
	if matched == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetInvoiceAnalytics scans the invoices table and accumulates totals.
// totalPaid only counts rows whose status is paid, so it can never exceed
// totalInvoiced.
func (s *billingService) GetInvoiceAnalytics(ctx context.Context) (*InvoiceAnalytics, error) {
	var invoices []models.Invoice
	if err := s.store.Find(ctx, store.TableInvoices, bson.M{}, &invoices); err != nil {
		return nil, fmt.Errorf("failed to scan invoices for analytics: %w", err)
	}

	today := time.Now().UTC().Format(DateLayout)
	analytics := &InvoiceAnalytics{}
	for _, inv := range invoices {
		analytics.TotalInvoiced += inv.Amount
		if inv.Status == models.InvoiceStatusPaid {
			analytics.TotalPaid += inv.Amount
		}
		if inv.Status == models.InvoiceStatusPending && inv.DueDate < today {
			analytics.OverdueCount++
		}
	}
	return analytics, nil
}
