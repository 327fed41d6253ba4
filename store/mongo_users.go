package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/merze/merzebackend/models"
)

type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(col *mongo.Collection) *MongoUsers {
	return &MongoUsers{col: col}
}

func (s *MongoUsers) List(ctx context.Context) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	for cursor.Next(ctx) {
		var u models.User
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, cursor.Err()
}

func (s *MongoUsers) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoUsers) Insert(ctx context.Context, u *models.User) (bson.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, u); err != nil {
		return bson.ObjectID{}, err
	}
	return u.ID, nil
}

func (s *MongoUsers) PushAddress(ctx context.Context, userID, addressID bson.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"addresses": addressID},
	})
	return err
}

func (s *MongoUsers) PushOrder(ctx context.Context, userID, orderID bson.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{
		"$push": bson.M{"orders": orderID},
	})
	return err
}

func (s *MongoUsers) SetAddresses(ctx context.Context, userID bson.ObjectID, addresses []bson.ObjectID) error {
	res, err := s.col.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{"addresses": addresses},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoUsers) Delete(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	var removed models.User
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&removed)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &removed, nil
}
