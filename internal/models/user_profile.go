package models

import (
	"time"
)

// User roles for portal routing.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// UserProfile is the account row behind a portal login.
type UserProfile struct {
	Base         `bson:",inline"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"full_name,omitempty" json:"fullName,omitempty"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Client is the business entity a user profile belongs to.
type Client struct {
	Base        `bson:",inline"`
	UserID      string    `bson:"user_id" json:"userId"`
	CompanyName string    `bson:"company_name,omitempty" json:"companyName,omitempty"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
