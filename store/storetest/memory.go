// Package storetest provides in-memory store implementations for
// exercising services and controllers without a running database.
package storetest

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/models"
	"github.com/merze/merzebackend/store"
)

// New returns a bundle of empty in-memory stores.
func New() *Memory {
	m := &Memory{}
	m.Sections = &memSections{m: m}
	m.Types = &memTypes{m: m}
	m.Products = &memProducts{m: m}
	m.Users = &memUsers{m: m}
	m.Addresses = &memAddresses{m: m}
	m.Orders = &memOrders{m: m}
	return m
}

// Memory holds all documents in insertion-ordered slices.
type Memory struct {
	Sections  store.SectionStore
	Types     store.TypeStore
	Products  store.ProductStore
	Users     store.UserStore
	Addresses store.AddressStore
	Orders    store.OrderStore

	SectionDocs []models.Section
	TypeDocs    []models.Type
	ProductDocs []models.Product
	UserDocs    []models.User
	AddressDocs []models.Address
	OrderDocs   []models.Order
}

func (m *Memory) Stores() store.Stores {
	return store.Stores{
		Sections:  m.Sections,
		Types:     m.Types,
		Products:  m.Products,
		Users:     m.Users,
		Addresses: m.Addresses,
		Orders:    m.Orders,
	}
}

type memSections struct{ m *Memory }

func (s *memSections) List(_ context.Context) ([]models.Section, error) {
	out := append([]models.Section(nil), s.m.SectionDocs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memSections) FindByID(_ context.Context, id bson.ObjectID) (*models.Section, error) {
	for i := range s.m.SectionDocs {
		if s.m.SectionDocs[i].ID == id {
			sec := s.m.SectionDocs[i]
			return &sec, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memSections) FindByName(_ context.Context, name string) (*models.Section, error) {
	for i := range s.m.SectionDocs {
		if s.m.SectionDocs[i].Name == name {
			sec := s.m.SectionDocs[i]
			return &sec, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memSections) Insert(_ context.Context, section *models.Section) (bson.ObjectID, error) {
	if section.ID.IsZero() {
		section.ID = bson.NewObjectID()
	}
	s.m.SectionDocs = append(s.m.SectionDocs, *section)
	return section.ID, nil
}

func (s *memSections) AppendImages(_ context.Context, id bson.ObjectID, urls []string) error {
	for i := range s.m.SectionDocs {
		if s.m.SectionDocs[i].ID == id {
			s.m.SectionDocs[i].Images = append(s.m.SectionDocs[i].Images, urls...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memTypes struct{ m *Memory }

func (s *memTypes) List(_ context.Context) ([]models.Type, error) {
	out := append([]models.Type(nil), s.m.TypeDocs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memTypes) FindByID(_ context.Context, id bson.ObjectID) (*models.Type, error) {
	for i := range s.m.TypeDocs {
		if s.m.TypeDocs[i].ID == id {
			t := s.m.TypeDocs[i]
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memTypes) FindByName(_ context.Context, sectionID bson.ObjectID, name string) (*models.Type, error) {
	for i := range s.m.TypeDocs {
		if s.m.TypeDocs[i].Section == sectionID && s.m.TypeDocs[i].Name == name {
			t := s.m.TypeDocs[i]
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memTypes) Insert(_ context.Context, t *models.Type) (bson.ObjectID, error) {
	if t.ID.IsZero() {
		t.ID = bson.NewObjectID()
	}
	s.m.TypeDocs = append(s.m.TypeDocs, *t)
	return t.ID, nil
}

func (s *memTypes) AppendImages(_ context.Context, id bson.ObjectID, urls []string) error {
	for i := range s.m.TypeDocs {
		if s.m.TypeDocs[i].ID == id {
			s.m.TypeDocs[i].Images = append(s.m.TypeDocs[i].Images, urls...)
			return nil
		}
	}
	return store.ErrNotFound
}

type memProducts struct{ m *Memory }

func (s *memProducts) Find(_ context.Context, filter store.ProductFilter) ([]models.Product, error) {
	out := make([]models.Product, 0)
	for _, p := range s.m.ProductDocs {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Section != nil && p.Section != *filter.Section {
			continue
		}
		if filter.Types != nil && p.Types != *filter.Types {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *memProducts) FindByID(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	for i := range s.m.ProductDocs {
		if s.m.ProductDocs[i].ID == id {
			p := s.m.ProductDocs[i]
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memProducts) Insert(_ context.Context, p *models.Product) (bson.ObjectID, error) {
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	s.m.ProductDocs = append(s.m.ProductDocs, *p)
	return p.ID, nil
}

func (s *memProducts) Update(_ context.Context, id bson.ObjectID, set bson.M) (*models.Product, error) {
	for i := range s.m.ProductDocs {
		if s.m.ProductDocs[i].ID != id {
			continue
		}
		p := &s.m.ProductDocs[i]
		for k, v := range set {
			switch k {
			case "title":
				p.Title = v.(string)
			case "price":
				p.Price = v.(float64)
			case "category":
				p.Category = v.(string)
			case "rating":
				p.Rating = v.(float64)
			case "sellerId":
				p.SellerID = v.(string)
			case "stock":
				p.Stock = v.(int)
			case "images":
				p.Images = v.([]string)
			case "section":
				p.Section = v.(bson.ObjectID)
			case "types":
				p.Types = v.(bson.ObjectID)
			case "updatedAt":
				p.UpdatedAt = v.(time.Time)
			}
		}
		updated := *p
		return &updated, nil
	}
	return nil, store.ErrNotFound
}

func (s *memProducts) Delete(_ context.Context, id bson.ObjectID) (*models.Product, error) {
	for i := range s.m.ProductDocs {
		if s.m.ProductDocs[i].ID == id {
			removed := s.m.ProductDocs[i]
			s.m.ProductDocs = append(s.m.ProductDocs[:i], s.m.ProductDocs[i+1:]...)
			return &removed, nil
		}
	}
	return nil, store.ErrNotFound
}

type memUsers struct{ m *Memory }

func (s *memUsers) List(_ context.Context) ([]models.User, error) {
	return append([]models.User(nil), s.m.UserDocs...), nil
}

func (s *memUsers) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	for i := range s.m.UserDocs {
		if s.m.UserDocs[i].ID == id {
			u := s.m.UserDocs[i]
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUsers) Insert(_ context.Context, u *models.User) (bson.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	s.m.UserDocs = append(s.m.UserDocs, *u)
	return u.ID, nil
}

func (s *memUsers) PushAddress(_ context.Context, userID, addressID bson.ObjectID) error {
	for i := range s.m.UserDocs {
		if s.m.UserDocs[i].ID == userID {
			s.m.UserDocs[i].Addresses = append(s.m.UserDocs[i].Addresses, addressID)
		}
	}
	return nil
}

func (s *memUsers) PushOrder(_ context.Context, userID, orderID bson.ObjectID) error {
	for i := range s.m.UserDocs {
		if s.m.UserDocs[i].ID == userID {
			s.m.UserDocs[i].Orders = append(s.m.UserDocs[i].Orders, orderID)
		}
	}
	return nil
}

func (s *memUsers) SetAddresses(_ context.Context, userID bson.ObjectID, addresses []bson.ObjectID) error {
	for i := range s.m.UserDocs {
		if s.m.UserDocs[i].ID == userID {
			s.m.UserDocs[i].Addresses = addresses
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memUsers) Delete(_ context.Context, id bson.ObjectID) (*models.User, error) {
	for i := range s.m.UserDocs {
		if s.m.UserDocs[i].ID == id {
			removed := s.m.UserDocs[i]
			s.m.UserDocs = append(s.m.UserDocs[:i], s.m.UserDocs[i+1:]...)
			return &removed, nil
		}
	}
	return nil, store.ErrNotFound
}

type memAddresses struct{ m *Memory }

func (s *memAddresses) FindByID(_ context.Context, id bson.ObjectID) (*models.Address, error) {
	for i := range s.m.AddressDocs {
		if s.m.AddressDocs[i].ID == id {
			a := s.m.AddressDocs[i]
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memAddresses) FindByUser(_ context.Context, userID bson.ObjectID) ([]models.Address, error) {
	out := make([]models.Address, 0)
	for _, a := range s.m.AddressDocs {
		if a.User == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memAddresses) Insert(_ context.Context, a *models.Address) (bson.ObjectID, error) {
	if a.ID.IsZero() {
		a.ID = bson.NewObjectID()
	}
	s.m.AddressDocs = append(s.m.AddressDocs, *a)
	return a.ID, nil
}

func (s *memAddresses) Delete(_ context.Context, id bson.ObjectID) error {
	for i := range s.m.AddressDocs {
		if s.m.AddressDocs[i].ID == id {
			s.m.AddressDocs = append(s.m.AddressDocs[:i], s.m.AddressDocs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memAddresses) DeleteByUser(_ context.Context, userID bson.ObjectID) (int64, error) {
	kept := s.m.AddressDocs[:0]
	var removed int64
	for _, a := range s.m.AddressDocs {
		if a.User == userID {
			removed++
			continue
		}
		kept = append(kept, a)
	}
	s.m.AddressDocs = kept
	return removed, nil
}

type memOrders struct{ m *Memory }

func (s *memOrders) FindByID(_ context.Context, id bson.ObjectID) (*models.Order, error) {
	for i := range s.m.OrderDocs {
		if s.m.OrderDocs[i].ID == id {
			o := s.m.OrderDocs[i]
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memOrders) FindByUser(_ context.Context, userID bson.ObjectID) ([]models.Order, error) {
	out := make([]models.Order, 0)
	for _, o := range s.m.OrderDocs {
		if o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memOrders) Insert(_ context.Context, o *models.Order) (bson.ObjectID, error) {
	if o.ID.IsZero() {
		o.ID = bson.NewObjectID()
	}
	s.m.OrderDocs = append(s.m.OrderDocs, *o)
	return o.ID, nil
}

func (s *memOrders) DeleteByUser(_ context.Context, userID bson.ObjectID) (int64, error) {
	kept := s.m.OrderDocs[:0]
	var removed int64
	for _, o := range s.m.OrderDocs {
		if o.User == userID {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	s.m.OrderDocs = kept
	return removed, nil
}
