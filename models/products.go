package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Product struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string        `bson:"title" json:"title"`
	Price     float64       `bson:"price" json:"price"`
	Category  string        `bson:"category" json:"category"`
	Rating    float64       `bson:"rating" json:"rating"`
	SellerID  string        `bson:"sellerId" json:"sellerId"`
	Stock     int           `bson:"stock" json:"stock"`
	Images    []string      `bson:"images" json:"images"`
	Section   bson.ObjectID `bson:"section" json:"section"`
	Types     bson.ObjectID `bson:"types" json:"types"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ExpandedProduct is the read shape with section/types references
// replaced by the referenced documents. A dangling reference comes
// back as nil rather than failing the whole read.
type ExpandedProduct struct {
	ID        bson.ObjectID `json:"id"`
	Title     string        `json:"title"`
	Price     float64       `json:"price"`
	Category  string        `json:"category"`
	Rating    float64       `json:"rating"`
	SellerID  string        `json:"sellerId"`
	Stock     int           `json:"stock"`
	Images    []string      `json:"images"`
	Section   *Section      `json:"section"`
	Types     *Type         `json:"types"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
