package models

import (
	"time"
)

// Contract is a client agreement. Only its retention lifecycle is implemented
// by this core; the signing workflow surfaces as not-yet-implemented.
type Contract struct {
	Base      `bson:",inline"`
	ClientID  string    `bson:"client_id" json:"clientId"`
	Title     string    `bson:"title,omitempty" json:"title,omitempty"`
	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	SignedBy  string    `bson:"signed_by,omitempty" json:"signedBy,omitempty"`
	FileKey   string    `bson:"file_key,omitempty" json:"fileKey,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SupportTicket is a portal support request. Read by the portal tabs and the
// retention sweep.
type SupportTicket struct {
	Base      `bson:",inline"`
	UserID    string    `bson:"user_id" json:"userId"`
	Subject   string    `bson:"subject" json:"subject"`
	Body      string    `bson:"body,omitempty" json:"body,omitempty"`
	Status    string    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
