package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// IContactService defines the interface for contact form operations.
type IContactService interface {
	CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error
	ListSubmissions(ctx context.Context) ([]models.ContactSubmission, error)
}

// contactService implements IContactService.
type contactService struct {
	store *store.Store
}

// NewContactService creates a new ContactService.
func NewContactService(st *store.Store) IContactService {
	return &contactService{store: st}
}

// CreateSubmission stores one contact form submission.
func (s *contactService) CreateSubmission(ctx context.Context, submission *models.ContactSubmission) error {
	submission.CreatedAt = time.Now().UTC()
	if err := s.store.Insert(ctx, store.TableContactSubmissions, submission); err != nil {
		return fmt.Errorf("failed to store contact submission from %s: %w", submission.Email, err)
	}
	return nil
}

// ListSubmissions returns all submissions, newest first.
func (s *contactService) ListSubmissions(ctx context.Context) ([]models.ContactSubmission, error) {
	var subs []models.ContactSubmission
	if err := s.store.Find(ctx, store.TableContactSubmissions, bson.M{}, &subs); err != nil {
		return nil, fmt.Errorf("failed to list contact submissions: %w", err)
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}
