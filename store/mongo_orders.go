package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/merze/merzebackend/models"
)

type MongoOrders struct {
	col *mongo.Collection
}

func NewMongoOrders(col *mongo.Collection) *MongoOrders {
	return &MongoOrders{col: col}
}

func (s *MongoOrders) FindByID(ctx context.Context, id bson.ObjectID) (*models.Order, error) {
	var o models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MongoOrders) FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	cursor, err := s.col.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	for cursor.Next(ctx) {
		var o models.Order
		if err := cursor.Decode(&o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, cursor.Err()
}

func (s *MongoOrders) Insert(ctx context.Context, o *models.Order) (bson.ObjectID, error) {
	if o.ID.IsZero() {
		o.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, o); err != nil {
		return bson.ObjectID{}, err
	}
	return o.ID, nil
}

func (s *MongoOrders) DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
