package email

import (
	"context"
	"log"
)

// Sender records or delivers a notification email. No implementation in this
// core performs real SMTP delivery; every send is logged and/or persisted so
// the portal and tests can observe it.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LoggingSender writes email details to the process log. Used when no other
// sink is configured.
type LoggingSender struct{}

func NewLoggingSender() Sender {
	return &LoggingSender{}
}

func (s *LoggingSender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("[EMAIL] To: %s\nSubject: %s\nBody: %s", to, subject, body)
	return nil
}
