package handlers_test

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/services"
)

// --- Mocks ---

// MockBillingService
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) GetDueSubscriptions(ctx context.Context) []models.Subscription {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Subscription)
}

func (m *MockBillingService) GenerateInvoice(ctx context.Context, in services.GenerateInvoiceInput) (*models.Invoice, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invoice), args.Error(1)
}

func (m *MockBillingService) GetOverdueInvoices(ctx context.Context) []models.Invoice {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Invoice)
}

func (m *MockBillingService) GetInvoiceStatus(ctx context.Context, invoiceID string) (string, error) {
	args := m.Called(ctx, invoiceID)
	return args.String(0), args.Error(1)
}

func (m *MockBillingService) UpdatePaymentStatus(ctx context.Context, invoiceID, status string) error {
	args := m.Called(ctx, invoiceID, status)
	return args.Error(0)
}

func (m *MockBillingService) UpdateSubscriptionStatus(ctx context.Context, subscriptionID, status string) error {
	args := m.Called(ctx, subscriptionID, status)
	return args.Error(0)
}

func (m *MockBillingService) GetInvoiceAnalytics(ctx context.Context) (*services.InvoiceAnalytics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.InvoiceAnalytics), args.Error(1)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendLatePaymentNotification(ctx context.Context, invoice *models.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockNotificationService) SendPaymentNotification(ctx context.Context, toEmail, message string) error {
	args := m.Called(ctx, toEmail, message)
	return args.Error(0)
}

func (m *MockNotificationService) SendContactReceipt(ctx context.Context, submission *models.ContactSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

// MockContactService
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *MockContactService) ListSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContactSubmission), args.Error(1)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

// MockExportService
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportAll(ctx context.Context, requestedBy string) (*services.AdminExport, error) {
	args := m.Called(ctx, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AdminExport), args.Error(1)
}

func (m *MockExportService) ExportUser(ctx context.Context, userID string) (*services.UserExport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserExport), args.Error(1)
}

func (m *MockExportService) ImportAll(ctx context.Context, data *services.AdminExport, importedBy string) error {
	args := m.Called(ctx, data, importedBy)
	return args.Error(0)
}

func (m *MockExportService) GetUserData(ctx context.Context, userID string) (*services.UserData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserData), args.Error(1)
}

func (m *MockExportService) UpdateUserData(ctx context.Context, userID string, updates map[string]interface{}) error {
	args := m.Called(ctx, userID, updates)
	return args.Error(0)
}

func (m *MockExportService) DeleteUserData(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// StubVerifier implements payfast.Verifier with a fixed answer.
type StubVerifier struct {
	Valid    bool
	Err      error
	Payloads []url.Values
}

func (v *StubVerifier) Verify(ctx context.Context, payload url.Values) (bool, error) {
	v.Payloads = append(v.Payloads, payload)
	return v.Valid, v.Err
}
