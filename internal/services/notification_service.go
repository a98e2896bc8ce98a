package services

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"

	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/email"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

const defaultLocale = "en-ZA"

// INotificationService defines the interface for outbound customer email.
type INotificationService interface {
	SendLatePaymentNotification(ctx context.Context, invoice *models.Invoice) error
	SendPaymentNotification(ctx context.Context, toEmail, message string) error
	SendContactReceipt(ctx context.Context, submission *models.ContactSubmission) error
}

// notificationService implements INotificationService.
type notificationService struct {
	store     *store.Store
	cfg       *config.Config
	sender    email.Sender
	templates IEmailTemplateService
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(st *store.Store, cfg *config.Config, sender email.Sender, templates IEmailTemplateService) INotificationService {
	return &notificationService{store: st, cfg: cfg, sender: sender, templates: templates}
}

// SendLatePaymentNotification emails the client behind an overdue invoice.
// The client's address is resolved through clients -> user_profiles.
func (s *notificationService) SendLatePaymentNotification(ctx context.Context, invoice *models.Invoice) error {
	toEmail, err := s.resolveClientEmail(ctx, invoice.ClientID)
	if err != nil {
		return fmt.Errorf("cannot notify client %s about invoice %s: %w", invoice.ClientID, invoice.ID, err)
	}

	tpl, err := s.templates.GetTemplate(ctx, "late_payment", defaultLocale)
	if err != nil {
		return err
	}
	subject, body := s.templates.Render(tpl, map[string]string{
		"invoice_id": invoice.ID,
		"total":      fmt.Sprintf("%.2f", invoice.Total),
		"currency":   invoice.Currency,
		"due_date":   invoice.DueDate,
	})
	return s.sender.Send(ctx, toEmail, subject, body)
}

// SendPaymentNotification delivers a free-form payment status message, used
// when the payment gateway reports a failed or cancelled payment.
func (s *notificationService) SendPaymentNotification(ctx context.Context, toEmail, message string) error {
	tpl, err := s.templates.GetTemplate(ctx, "payment_failed", defaultLocale)
	if err != nil {
		return err
	}
	subject, body := s.templates.Render(tpl, map[string]string{"message": message})
	return s.sender.Send(ctx, toEmail, subject, body)
}

// SendContactReceipt acknowledges a contact form submission. Failures are
// logged but never block the submission itself, so the error is advisory.
func (s *notificationService) SendContactReceipt(ctx context.Context, submission *models.ContactSubmission) error {
	tpl, err := s.templates.GetTemplate(ctx, "contact_receipt", defaultLocale)
	if err != nil {
		return err
	}
	subject, body := s.templates.Render(tpl, map[string]string{
		"first_name": submission.FirstName,
		"subject":    submission.Subject,
	})
	if err := s.sender.Send(ctx, submission.Email, subject, body); err != nil {
		log.Printf("Failed to send contact receipt to %s: %v", submission.Email, err)
		return err
	}
	return nil
}

func (s *notificationService) resolveClientEmail(ctx context.Context, clientID string) (string, error) {
	var client models.Client
	if err := s.store.FindOne(ctx, store.TableClients, bson.M{"_id": clientID}, &client); err != nil {
		return "", fmt.Errorf("client lookup failed: %w", err)
	}
	var profile models.UserProfile
	if err := s.store.FindOne(ctx, store.TableUserProfiles, bson.M{"_id": client.UserID}, &profile); err != nil {
		return "", fmt.Errorf("profile lookup failed: %w", err)
	}
	if profile.Email == "" {
		return "", fmt.Errorf("user %s has no email address", profile.ID)
	}
	return profile.Email, nil
}
