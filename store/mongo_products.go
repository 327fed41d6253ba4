package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/merze/merzebackend/models"
)

type MongoProducts struct {
	col *mongo.Collection
}

func NewMongoProducts(col *mongo.Collection) *MongoProducts {
	return &MongoProducts{col: col}
}

func (s *MongoProducts) Find(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Section != nil {
		query["section"] = *filter.Section
	}
	if filter.Types != nil {
		query["types"] = *filter.Types
	}

	cursor, err := s.col.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, cursor.Err()
}

func (s *MongoProducts) FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoProducts) Insert(ctx context.Context, p *models.Product) (bson.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, p); err != nil {
		return bson.ObjectID{}, err
	}
	return p.ID, nil
}

func (s *MongoProducts) Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *MongoProducts) Delete(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	var removed models.Product
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
