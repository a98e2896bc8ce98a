package models

import (
	"time"
)

// Subscription statuses as stored in the subscriptions table.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

// Subscription is a recurring billing arrangement for a client. Rows are
// created by the payment flow; the billing scheduler only reads them and the
// payment webhook mutates their status.
type Subscription struct {
	Base         `bson:",inline"`
	ClientID     string    `bson:"client_id" json:"clientId"`
	PlanID       string    `bson:"plan_id" json:"planId"`
	Amount       float64   `bson:"amount" json:"amount"`
	BillingCycle string    `bson:"billing_cycle" json:"billingCycle"` // e.g. "monthly"
	Status       string    `bson:"status" json:"status"`
	EndDate      string    `bson:"end_date,omitempty" json:"end_date,omitempty"` // YYYY-MM-DD, empty = open-ended
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
