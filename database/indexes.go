package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the uniqueness indexes the resolver relies on:
// section names are globally unique, type names are unique within
// their section. Under concurrent get-or-create of the same name the
// loser of the race gets a duplicate-key error from the store.
func EnsureIndexes(ctx context.Context) error {
	sections := OpenCollection("sections")
	_, err := sections.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("sections indexes: %w", err)
	}

	types := OpenCollection("types")
	_, err = types.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "section", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("types indexes: %w", err)
	}

	return nil
}
