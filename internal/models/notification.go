package models

import (
	"time"
)

// EmailNotification is an append-only record standing in for actual email
// delivery. No real transport is invoked by this core; the row is the audit
// trail tests and the admin dashboard read from.
type EmailNotification struct {
	Base    `bson:",inline"`
	To      string    `bson:"to" json:"to"`
	Subject string    `bson:"subject" json:"subject"`
	Body    string    `bson:"body" json:"body"`
	SentAt  time.Time `bson:"sent_at" json:"sent_at"`
}
