package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/merze/merzebackend/models"
)

type MongoTypes struct {
	col *mongo.Collection
}

func NewMongoTypes(col *mongo.Collection) *MongoTypes {
	return &MongoTypes{col: col}
}

func (s *MongoTypes) List(ctx context.Context) ([]models.Type, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	types := make([]models.Type, 0)
	for cursor.Next(ctx) {
		var t models.Type
		if err := cursor.Decode(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, cursor.Err()
}

func (s *MongoTypes) FindByID(ctx context.Context, id bson.ObjectID) (*models.Type, error) {
	var t models.Type
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoTypes) FindByName(ctx context.Context, sectionID bson.ObjectID, name string) (*models.Type, error) {
	var t models.Type
	err := s.col.FindOne(ctx, bson.M{"section": sectionID, "name": name}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoTypes) Insert(ctx context.Context, t *models.Type) (bson.ObjectID, error) {
	if t.ID.IsZero() {
		t.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, t); err != nil {
		return bson.ObjectID{}, err
	}
	return t.ID, nil
}

func (s *MongoTypes) AppendImages(ctx context.Context, id bson.ObjectID, urls []string) error {
	res, err := s.col.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"images": bson.M{"$each": urls}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
