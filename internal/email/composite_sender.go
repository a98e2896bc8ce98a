package email

import (
	"context"
	"fmt"
	"strings"
)

// CompositeSender delegates each send to multiple Senders. A failure in one
// sink does not stop the others; all errors are collected.
type CompositeSender struct {
	senders []Sender
}

func NewCompositeSender(senders ...Sender) *CompositeSender {
	return &CompositeSender{senders: senders}
}

// AddSender adds a sender to the composite sender's list.
func (cs *CompositeSender) AddSender(sender Sender) {
	if sender != nil {
		cs.senders = append(cs.senders, sender)
	}
}

func (cs *CompositeSender) Send(ctx context.Context, to, subject, body string) error {
	if len(cs.senders) == 0 {
		return fmt.Errorf("no senders configured in CompositeSender")
	}

	var allErrors []string
	for _, sender := range cs.senders {
		if err := sender.Send(ctx, to, subject, body); err != nil {
			allErrors = append(allErrors, err.Error())
		}
	}

	if len(allErrors) > 0 {
		return fmt.Errorf("composite email send failed: [ %s ]", strings.Join(allErrors, "; "))
	}
	return nil
}
