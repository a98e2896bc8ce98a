package models

import (
	"time"
)

// Invoice statuses as stored in the invoices table.
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
)

// InvoiceCurrency is the only currency invoices are ever issued in.
// Caller-supplied currencies are overridden on insert.
const InvoiceCurrency = "ZAR"

// Invoice represents a bill issued to a client, optionally tied to a
// recurring subscription.
type Invoice struct {
	Base           `bson:",inline"`
	ClientID       string                 `bson:"client_id" json:"clientId"`
	SubscriptionID string                 `bson:"subscription_id,omitempty" json:"subscriptionId,omitempty"`
	PlanID         string                 `bson:"plan_id,omitempty" json:"planId,omitempty"`
	Amount         float64                `bson:"amount" json:"amount"`
	TaxRate        float64                `bson:"tax_rate" json:"taxRate"`
	TaxAmount      float64                `bson:"tax_amount" json:"taxAmount"`
	Total          float64                `bson:"total" json:"total"`
	Currency       string                 `bson:"currency" json:"currency"`
	Status         string                 `bson:"status" json:"status"`
	DueDate        string                 `bson:"due_date" json:"due_date"` // YYYY-MM-DD
	Notes          string                 `bson:"notes,omitempty" json:"notes,omitempty"`
	TemplateID     string                 `bson:"template_id,omitempty" json:"templateId,omitempty"`
	CustomFields   map[string]interface{} `bson:"custom_fields,omitempty" json:"customFields,omitempty"`
	CreatedAt      time.Time              `bson:"created_at" json:"created_at"`
}
