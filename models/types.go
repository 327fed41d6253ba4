package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Type is a sub-category inside a Section, e.g. "Shirt" under "Men".
// Names are unique per Section, enforced by a compound index.
type Type struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Slug      string        `bson:"slug" json:"slug"`
	Images    []string      `bson:"images" json:"images"`
	Section   bson.ObjectID `bson:"section" json:"section"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}
