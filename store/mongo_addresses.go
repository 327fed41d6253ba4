package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/merze/merzebackend/models"
)

type MongoAddresses struct {
	col *mongo.Collection
}

func NewMongoAddresses(col *mongo.Collection) *MongoAddresses {
	return &MongoAddresses{col: col}
}

func (s *MongoAddresses) FindByID(ctx context.Context, id bson.ObjectID) (*models.Address, error) {
	var a models.Address
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoAddresses) FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Address, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	addresses := make([]models.Address, 0)
	for cursor.Next(ctx) {
		var a models.Address
		if err := cursor.Decode(&a); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, cursor.Err()
}

func (s *MongoAddresses) Insert(ctx context.Context, a *models.Address) (bson.ObjectID, error) {
	if a.ID.IsZero() {
		a.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, a); err != nil {
		return bson.ObjectID{}, err
	}
	return a.ID, nil
}

func (s *MongoAddresses) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoAddresses) DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
