package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Section is a top-level catalog grouping such as "Men" or "Women".
type Section struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Slug      string        `bson:"slug" json:"slug"`
	Images    []string      `bson:"images" json:"images"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
