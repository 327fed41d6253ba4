package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/merze/merzebackend/models"
)

type MongoSections struct {
	col *mongo.Collection
}

func NewMongoSections(col *mongo.Collection) *MongoSections {
	return &MongoSections{col: col}
}

func (s *MongoSections) List(ctx context.Context) ([]models.Section, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sections := make([]models.Section, 0)
	for cursor.Next(ctx) {
		var sec models.Section
		if err := cursor.Decode(&sec); err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, cursor.Err()
}

func (s *MongoSections) FindByID(ctx context.Context, id bson.ObjectID) (*models.Section, error) {
	var sec models.Section
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s *MongoSections) FindByName(ctx context.Context, name string) (*models.Section, error) {
	var sec models.Section
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&sec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s *MongoSections) Insert(ctx context.Context, section *models.Section) (bson.ObjectID, error) {
	if section.ID.IsZero() {
		section.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, section); err != nil {
		return bson.ObjectID{}, err
	}
	return section.ID, nil
}

func (s *MongoSections) AppendImages(ctx context.Context, id bson.ObjectID, urls []string) error {
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
