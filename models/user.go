package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Surname   string          `bson:"surname" json:"surname"`
	Gender    string          `bson:"gender" json:"gender"`
	Email     string          `bson:"email" json:"email"`
	Phone     string          `bson:"phone" json:"phone"`
	Addresses []bson.ObjectID `bson:"addresses" json:"addresses"`
	Orders    []bson.ObjectID `bson:"orders" json:"orders"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ExpandedUser is the read shape produced by the query facade: the
// address and order reference lists are replaced with the referenced
// documents, and entries that no longer resolve are filtered out.
type ExpandedUser struct {
	ID        bson.ObjectID   `json:"id"`
	Name      string          `json:"name"`
	Surname   string          `json:"surname"`
	Gender    string          `json:"gender"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Addresses []Address       `json:"addresses"`
	Orders    []ExpandedOrder `json:"orders"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
