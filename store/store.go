// Package store is the data-access layer. Each entity gets a small
// interface so the services above it can be exercised against the
// in-memory implementations in storetest.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/models"
)

// ErrNotFound is returned when a lookup by identifier or unique field
// matches no document.
var ErrNotFound = errors.New("document not found")

type SectionStore interface {
	List(ctx context.Context) ([]models.Section, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Section, error)
	FindByName(ctx context.Context, name string) (*models.Section, error)
	Insert(ctx context.Context, section *models.Section) (bson.ObjectID, error)
	AppendImages(ctx context.Context, id bson.ObjectID, urls []string) error
}

type TypeStore interface {
	List(ctx context.Context) ([]models.Type, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Type, error)
	// FindByName is scoped to a section: type names are only unique
	// within their parent section.
	FindByName(ctx context.Context, sectionID bson.ObjectID, name string) (*models.Type, error)
	Insert(ctx context.Context, t *models.Type) (bson.ObjectID, error)
	AppendImages(ctx context.Context, id bson.ObjectID, urls []string) error
}

// ProductFilter narrows product listings by exact match. Nil/empty
// fields are ignored.
type ProductFilter struct {
	Category string
	Section  *bson.ObjectID
	Types    *bson.ObjectID
}

type ProductStore interface {
	Find(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) (bson.ObjectID, error)
	// Update merges the given fields into the document and returns the
	// updated state.
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Product, error)
	// Delete removes the document and returns the removed snapshot.
	Delete(ctx context.Context, id bson.ObjectID) (*models.Product, error)
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (bson.ObjectID, error)
	PushAddress(ctx context.Context, userID, addressID bson.ObjectID) error
	PushOrder(ctx context.Context, userID, orderID bson.ObjectID) error
	SetAddresses(ctx context.Context, userID bson.ObjectID, addresses []bson.ObjectID) error
	Delete(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

type AddressStore interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Address, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Address, error)
	Insert(ctx context.Context, a *models.Address) (bson.ObjectID, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

type OrderStore interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error)
	Insert(ctx context.Context, o *models.Order) (bson.ObjectID, error)
	DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
}

// Stores bundles one store per entity for wiring through main.
type Stores struct {
	Sections  SectionStore
	Types     TypeStore
	Products  ProductStore
	Users     UserStore
	Addresses AddressStore
	Orders    OrderStore
}
