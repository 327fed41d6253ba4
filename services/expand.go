package services

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/models"
	"github.com/merze/merzebackend/store"
)

// Expander is the read-side query facade: it replaces stored reference
// ids with the referenced documents. References that no longer resolve
// are dropped from reference lists (and logged) rather than failing
// the read — stale ids are expected after partial deletes.
type Expander struct {
	sections  store.SectionStore
	types     store.TypeStore
	products  store.ProductStore
	addresses store.AddressStore
	orders    store.OrderStore
}

func NewExpander(s store.Stores) *Expander {
	return &Expander{
		sections:  s.Sections,
		types:     s.Types,
		products:  s.Products,
		addresses: s.Addresses,
		orders:    s.Orders,
	}
}

// catalogMemo avoids refetching the same section/type while expanding
// a list of products. Lookups stay sequential store calls.
type catalogMemo struct {
	sections map[bson.ObjectID]*models.Section
	types    map[bson.ObjectID]*models.Type
}

func newCatalogMemo() *catalogMemo {
	return &catalogMemo{
		sections: map[bson.ObjectID]*models.Section{},
		types:    map[bson.ObjectID]*models.Type{},
	}
}

func (e *Expander) section(ctx context.Context, id bson.ObjectID, memo *catalogMemo) (*models.Section, error) {
	if sec, ok := memo.sections[id]; ok {
		return sec, nil
	}
	sec, err := e.sections.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		memo.sections[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	memo.sections[id] = sec
	return sec, nil
}

func (e *Expander) typeByID(ctx context.Context, id bson.ObjectID, memo *catalogMemo) (*models.Type, error) {
	if t, ok := memo.types[id]; ok {
		return t, nil
	}
	t, err := e.types.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		memo.types[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	memo.types[id] = t
	return t, nil
}

func (e *Expander) product(ctx context.Context, p models.Product, memo *catalogMemo) (models.ExpandedProduct, error) {
	out := models.ExpandedProduct{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Category:  p.Category,
		Rating:    p.Rating,
		SellerID:  p.SellerID,
		Stock:     p.Stock,
		Images:    p.Images,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	sec, err := e.section(ctx, p.Section, memo)
	if err != nil {
		return out, err
	}
	out.Section = sec

	t, err := e.typeByID(ctx, p.Types, memo)
	if err != nil {
		return out, err
	}
	out.Types = t

	if out.Section == nil || out.Types == nil {
		log.Printf("expand: product %s has a dangling section/type reference", p.ID.Hex())
	}
	return out, nil
}

// Product expands a single product's section/type references.
func (e *Expander) Product(ctx context.Context, p models.Product) (models.ExpandedProduct, error) {
	return e.product(ctx, p, newCatalogMemo())
}

// Products expands a list, sharing one memo across the batch.
func (e *Expander) Products(ctx context.Context, products []models.Product) ([]models.ExpandedProduct, error) {
	memo := newCatalogMemo()
	out := make([]models.ExpandedProduct, 0, len(products))
	for _, p := range products {
		ep, err := e.product(ctx, p, memo)
		if err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, nil
}

func (e *Expander) order(ctx context.Context, o models.Order) (models.ExpandedOrder, error) {
	out := models.ExpandedOrder{
		ID:        o.ID,
		User:      o.User,
		Payment:   o.Payment,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	addr, err := e.addresses.FindByID(ctx, o.Address)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return out, err
	}
	out.Address = addr // nil when the address is gone

	out.Item = make([]models.ExpandedOrderItem, 0, len(o.Item))
	for _, item := range o.Item {
		ei := models.ExpandedOrderItem{
			Title:    item.Title,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
		p, err := e.products.FindByID(ctx, item.ProductID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return out, err
		}
		ei.Product = p
		out.Item = append(out.Item, ei)
	}
	return out, nil
}

// User expands a user's address and order reference lists. Entries
// whose documents no longer exist are filtered out; the remaining
// entries keep their stored order.
func (e *Expander) User(ctx context.Context, u models.User) (models.ExpandedUser, error) {
	out := models.ExpandedUser{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Gender:    u.Gender,
		Email:     u.Email,
		Phone:     u.Phone,
		Addresses: make([]models.Address, 0, len(u.Addresses)),
		Orders:    make([]models.ExpandedOrder, 0, len(u.Orders)),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}

	dropped := 0
	for _, id := range u.Addresses {
		addr, err := e.addresses.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			dropped++
			continue
		}
		if err != nil {
			return out, err
		}
		out.Addresses = append(out.Addresses, *addr)
	}

	for _, id := range u.Orders {
		o, err := e.orders.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			dropped++
			continue
		}
		if err != nil {
			return out, err
		}
		eo, err := e.order(ctx, *o)
		if err != nil {
			return out, err
		}
		out.Orders = append(out.Orders, eo)
	}

	if dropped > 0 {
		log.Printf("expand: dropped %d dangling references for user %s", dropped, u.ID.Hex())
	}
	return out, nil
}
