package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"cloudmzansi/server/internal/auth"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/store"
)

// IUserService defines the interface for user lookup and authentication.
type IUserService interface {
	FindByEmail(ctx context.Context, email string) (*models.UserProfile, error)
	FindByID(ctx context.Context, userID string) (*models.UserProfile, error)
	Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error)
}

// userService implements IUserService.
type userService struct {
	store *store.Store
}

// NewUserService creates a new UserService.
func NewUserService(st *store.Store) IUserService {
	return &userService{store: st}
}

// FindByEmail returns the profile registered under email.
func (s *userService) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.store.FindOne(ctx, store.TableUserProfiles, bson.M{"email": email}, &profile); err != nil {
		return nil, fmt.Errorf("user lookup by email failed: %w", err)
	}
	return &profile, nil
}

// FindByID returns the profile with the given ID.
func (s *userService) FindByID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.store.FindOne(ctx, store.TableUserProfiles, bson.M{"_id": userID}, &profile); err != nil {
		return nil, fmt.Errorf("user lookup by id failed: %w", err)
	}
	return &profile, nil
}

// Authenticate checks email and password. A missing user and a wrong
// password both produce ErrInvalidCredentials so callers cannot tell the
// two apart.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.store.FindOne(ctx, store.TableUserProfiles, bson.M{"email": email}, &profile); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(password, profile.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &profile, nil
}
