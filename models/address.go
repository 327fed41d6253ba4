package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type AddressType string

const (
	AddressHome  AddressType = "Home"
	AddressWork  AddressType = "Work"
	AddressOther AddressType = "Other"
)

func (t AddressType) Valid() bool {
	switch t {
	case AddressHome, AddressWork, AddressOther:
		return true
	}
	return false
}

type Address struct {
	ID             bson.ObjectID `bson:"_id,omitempty" json:"id"`
	User           bson.ObjectID `bson:"user" json:"user"`
	Area           string        `bson:"area" json:"area"`
	City           string        `bson:"city" json:"city"`
	State          string        `bson:"state" json:"state"`
	Pincode        int           `bson:"pincode" json:"pincode"`
	Landmark       string        `bson:"landmark,omitempty" json:"landmark,omitempty"`
	AlternatePhone string        `bson:"alternatePhone,omitempty" json:"alternatePhone,omitempty"`
	AddressType    AddressType   `bson:"addressType" json:"addressType"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
