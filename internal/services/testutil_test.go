package services

import (
	"context"
	"os"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cloudmzansi/server/internal/store"
)

var testMongoURI = ""

func init() {
	testMongoURI = os.Getenv("MONGO_URI_TEST")
	if testMongoURI == "" {
		testMongoURI = "mongodb://localhost:27017"
	}
}

// setupTestStore connects to the test MongoDB and drops the named
// collections so each test starts clean.
func setupTestStore(t *testing.T, dbName string, tables ...string) *store.Store {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(testMongoURI))
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(dbName)
	for _, table := range tables {
		_ = db.Collection(table).Drop(context.Background())
	}
	return store.New(db)
}
