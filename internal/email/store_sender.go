package email

import (
	"context"
	"time"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// StoreSender persists every send as an email_notifications row. The row is
// the delivery record: nothing further is transmitted.
type StoreSender struct {
	store *store.Store
}

func NewStoreSender(st *store.Store) Sender {
	return &StoreSender{store: st}
}

func (s *StoreSender) Send(ctx context.Context, to, subject, body string) error {
	return s.store.Insert(ctx, store.TableEmailNotifications, &models.EmailNotification{
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  time.Now().UTC(),
	})
}
