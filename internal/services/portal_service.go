package services

import (
	"context"
)

// Portal resource names exposed under /api/v1. Each is a planned client
// portal surface whose backing service has not shipped yet.
var PortalResources = []string{
	"users", "clients", "projects", "contracts", "invoices", "payments", "notifications",
}

// IPortalService defines the generic CRUD interface for client portal
// resources. Every method currently reports ErrNotImplemented; handlers
// translate that into 501 so portal clients see an honest status instead
// of fabricated empty data.
type IPortalService interface {
	List(ctx context.Context, resource string) ([]interface{}, error)
	Create(ctx context.Context, resource string, body map[string]interface{}) (interface{}, error)
	Get(ctx context.Context, resource, id string) (interface{}, error)
	Update(ctx context.Context, resource, id string, body map[string]interface{}) error
	Delete(ctx context.Context, resource, id string) error
	// Operation runs one named reserved operation outside the generic CRUD
	// surface (contract lifecycle, onboarding wizard, project tracking,
	// payment tracking, reporting).
	Operation(ctx context.Context, name string) error
}

type portalService struct{}

// NewPortalService creates the portal resource service.
func NewPortalService() IPortalService {
	return &portalService{}
}

func (s *portalService) List(ctx context.Context, resource string) ([]interface{}, error) {
	return nil, ErrNotImplemented
}

func (s *portalService) Create(ctx context.Context, resource string, body map[string]interface{}) (interface{}, error) {
	return nil, ErrNotImplemented
}

func (s *portalService) Get(ctx context.Context, resource, id string) (interface{}, error) {
	return nil, ErrNotImplemented
}

func (s *portalService) Update(ctx context.Context, resource, id string, body map[string]interface{}) error {
	return ErrNotImplemented
}

func (s *portalService) Delete(ctx context.Context, resource, id string) error {
	return ErrNotImplemented
}

func (s *portalService) Operation(ctx context.Context, name string) error {
	return ErrNotImplemented
}
