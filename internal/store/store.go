// Package store is the thin accessor layer over the hosted store. Each call
// performs a single filtered read, insert, update or delete against one named
// table and commits independently; no transaction ever spans two calls.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cloudmzansi/server/internal/db"
	"cloudmzansi/server/internal/models"
)

// Table names backing the portal and billing surfaces.
const (
	TableInvoices           = "invoices"
	TableSubscriptions      = "subscriptions"
	TableContracts          = "contracts"
	TableSupportTickets     = "support_tickets"
	TableUserProfiles       = "user_profiles"
	TableClients            = "clients"
	TableAuditLogs          = "audit_logs"
	TableEmailNotifications = "email_notifications"
	TableContactSubmissions = "contact_submissions"
	TableEmailTemplates     = "email_templates"
)

// StorageError wraps a transport or query failure from the hosted store.
type StorageError struct {
	Table string
	Op    string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s on %s: %v", e.Op, e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store exposes row-level operations on named tables.
type Store struct {
	db *mongo.Database
}

func New(database *mongo.Database) *Store {
	return &Store{db: database}
}

// Find decodes all rows matching filter into out (a pointer to a slice).
func (s *Store) Find(ctx context.Context, table string, filter bson.M, out interface{}) error {
	cursor, err := s.db.Collection(table).Find(ctx, filter)
	if err != nil {
		return &StorageError{Table: table, Op: "find", Err: err}
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return &StorageError{Table: table, Op: "decode", Err: err}
	}
	return nil
}

// FindOne decodes a single matching row into out. A missing row surfaces as
// a StorageError wrapping mongo.ErrNoDocuments.
func (s *Store) FindOne(ctx context.Context, table string, filter bson.M, out interface{}) error {
	if err := s.db.Collection(table).FindOne(ctx, filter).Decode(out); err != nil {
		return &StorageError{Table: table, Op: "find_one", Err: err}
	}
	return nil
}

// Insert appends one row, generating its ID when empty.
func (s *Store) Insert(ctx context.Context, table string, doc models.IBase) error {
	if _, err := db.InsertOne(ctx, s.db.Collection(table), doc); err != nil {
		return &StorageError{Table: table, Op: "insert", Err: err}
	}
	return nil
}

// Update applies a partial-row $set to every row matching filter and returns
// the matched count.
func (s *Store) Update(ctx context.Context, table string, filter bson.M, set bson.M) (int64, error) {
	res, err := s.db.Collection(table).UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, &StorageError{Table: table, Op: "update", Err: err}
	}
	return res.MatchedCount, nil
}

// Upsert replaces the row matching filter, inserting it when absent. Used by
// the data import path so repeated imports stay idempotent.
func (s *Store) Upsert(ctx context.Context, table string, filter bson.M, doc interface{}) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(table).ReplaceOne(ctx, filter, doc, opts); err != nil {
		return &StorageError{Table: table, Op: "upsert", Err: err}
	}
	return nil
}

// Delete removes every row matching filter and returns the deleted count.
func (s *Store) Delete(ctx context.Context, table string, filter bson.M) (int64, error) {
	res, err := s.db.Collection(table).DeleteMany(ctx, filter)
	if err != nil {
		return 0, &StorageError{Table: table, Op: "delete", Err: err}
	}
	return res.DeletedCount, nil
}
