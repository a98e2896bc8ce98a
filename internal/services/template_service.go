package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// Default email templates used as fallback when not found in database
var defaultEmailTemplates = map[string]models.EmailTemplate{
	"late_payment": {
		TemplateID: "late_payment",
		Locale:     "en-ZA",
		Subject:    "Payment Reminder: Invoice {{.invoice_id}}",
		Body:       "Your invoice {{.invoice_id}} for {{.total}} {{.currency}} was due on {{.due_date}} and is still unpaid. Please settle it at your earliest convenience.",
	},
	"payment_failed": {
		TemplateID: "payment_failed",
		Locale:     "en-ZA",
		Subject:    "Payment Update",
		Body:       "{{.message}}",
	},
	"contact_receipt": {
		TemplateID: "contact_receipt",
		Locale:     "en-ZA",
		Subject:    "We received your message",
		Body:       "Hi {{.first_name}}, thanks for getting in touch about \"{{.subject}}\". We will get back to you within one business day.",
	},
}

// IEmailTemplateService defines the interface for email template operations.
type IEmailTemplateService interface {
	GetTemplate(ctx context.Context, templateID, locale string) (*models.EmailTemplate, error)
	Render(tpl *models.EmailTemplate, vars map[string]string) (subject, body string)
}

// EmailTemplateService handles operations related to email templates.
type EmailTemplateService struct {
	store *store.Store
}

// NewEmailTemplateService creates a new instance of EmailTemplateService.
func NewEmailTemplateService(st *store.Store) *EmailTemplateService {
	return &EmailTemplateService{store: st}
}

// GetTemplate retrieves an email template by ID and locale, falling back to
// the built-in defaults when no stored override exists.
func (s *EmailTemplateService) GetTemplate(ctx context.Context, templateID string, locale string) (*models.EmailTemplate, error) {
	filter := bson.M{
		"template_id": templateID,
		"locale":      locale,
	}

	var template models.EmailTemplate
	err := s.store.FindOne(ctx, store.TableEmailTemplates, filter, &template)
	if err == nil {
		return &template, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("error retrieving template: %w", err)
	}
	if defaultTemplate, ok := defaultEmailTemplates[templateID]; ok {
		return &defaultTemplate, nil
	}
	return nil, fmt.Errorf("template not found: %s (locale: %s)", templateID, locale)
}

// Render substitutes {{.name}} placeholders in the template's subject and
// body. Unknown placeholders are left intact.
func (s *EmailTemplateService) Render(tpl *models.EmailTemplate, vars map[string]string) (string, string) {
	subject := tpl.Subject
	body := tpl.Body
	for name, value := range vars {
		placeholder := "{{." + name + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return subject, body
}

// SaveTemplate stores an email template override.
func (s *EmailTemplateService) SaveTemplate(ctx context.Context, template *models.EmailTemplate) error {
	filter := bson.M{
		"template_id": template.TemplateID,
		"locale":      template.Locale,
	}
	template.GenIDIfEmpty()
	if err := s.store.Upsert(ctx, store.TableEmailTemplates, filter, template); err != nil {
		return fmt.Errorf("error saving template: %w", err)
	}
	return nil
}

// DeleteTemplate removes a stored template override.
func (s *EmailTemplateService) DeleteTemplate(ctx context.Context, templateID string, locale string) error {
	filter := bson.M{
		"template_id": templateID,
		"locale":      locale,
	}
	if _, err := s.store.Delete(ctx, store.TableEmailTemplates, filter); err != nil {
		return fmt.Errorf("error deleting template: %w", err)
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
