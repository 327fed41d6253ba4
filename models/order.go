package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentCompleted   PaymentStatus = "completed"
	PaymentInterrupted PaymentStatus = "interrupted"
	PaymentDeclined    PaymentStatus = "declined"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentInterrupted, PaymentDeclined:
		return true
	}
	return false
}

type Payment struct {
	Method string        `bson:"method" json:"method"`
	Status PaymentStatus `bson:"status" json:"status"`
}

// OrderItem keeps the product reference under the "_id" key for wire
// compatibility with existing stored orders.
type OrderItem struct {
	ProductID bson.ObjectID `bson:"_id" json:"_id"`
	Title     string        `bson:"title" json:"title"`
	Price     float64       `bson:"price" json:"price"`
	Quantity  int           `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	User      bson.ObjectID `bson:"user" json:"user"`
	Item      []OrderItem   `bson:"item" json:"item"`
	Address   bson.ObjectID `bson:"address" json:"address"`
	Payment   Payment       `bson:"payment" json:"payment"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// ExpandedOrderItem carries the snapshot fields from the order line
// plus the product document when it still resolves.
type ExpandedOrderItem struct {
	Product  *Product `json:"product"`
	Title    string   `json:"title"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
}

type ExpandedOrder struct {
	ID        bson.ObjectID       `json:"id"`
	User      bson.ObjectID       `json:"user"`
	Item      []ExpandedOrderItem `json:"item"`
	Address   *Address            `json:"address"`
	Payment   Payment             `json:"payment"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}
