package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"cloudmzansi/server/internal/models"
)

// InsertOne inserts a document, generating an ID when the caller left it
// empty. On a duplicate key collision a fresh ID is generated and the insert
// retried.
func InsertOne(ctx context.Context, coll *mongo.Collection, doc models.IBase) (models.IBase, error) {
	doc.GenIDIfEmpty()
	err := Try(func() error {
		_, err := coll.InsertOne(ctx, doc)
		if err != nil && IsMongoDuplicateKeyError(err) {
			doc.GenID()
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("insert into %s failed: %w", coll.Name(), err)
	}
	return doc, nil
}
