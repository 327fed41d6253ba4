package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/models"
	"github.com/merze/merzebackend/store"
)

type Products struct {
	products store.ProductStore
	catalog  *Catalog
	expander *Expander
}

func NewProducts(products store.ProductStore, catalog *Catalog, expander *Expander) *Products {
	return &Products{products: products, catalog: catalog, expander: expander}
}

// CreatedProduct echoes the saved product together with the resolved
// (possibly freshly created) section and type records.
type CreatedProduct struct {
	Product models.Product  `json:"product"`
	Type    *models.Type    `json:"type"`
	Section *models.Section `json:"section"`
}

func validateCreate(item dto.CreateProductDTO) error {
	switch {
	case item.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidRequest)
	case item.Price <= 0:
		return fmt.Errorf("%w: price is required", ErrInvalidRequest)
	case item.Section == nil:
		return fmt.Errorf("%w: section is required", ErrInvalidRequest)
	case item.Types == nil:
		return fmt.Errorf("%w: types is required", ErrInvalidRequest)
	case item.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", ErrInvalidRequest)
	}
	return nil
}

// Create accepts one or many products. Every item is validated before
// any resolver or store call runs; the items themselves are then
// processed sequentially, so a failure partway leaves earlier items
// persisted.
func (s *Products) Create(ctx context.Context, items []dto.CreateProductDTO) ([]CreatedProduct, error) {
	for _, item := range items {
		if err := validateCreate(item); err != nil {
			return nil, err
		}
	}

	saved := make([]CreatedProduct, 0, len(items))
	for _, item := range items {
		sec, t, err := s.catalog.ResolvePair(ctx, *item.Section, *item.Types)
		if err != nil {
			return saved, err
		}

		now := time.Now().UTC()
		product := models.Product{
			Title:     item.Title,
			Price:     item.Price,
			Category:  item.Category,
			Rating:    item.Rating,
			SellerID:  item.SellerID,
			Stock:     item.Stock,
			Images:    item.Images,
			Section:   sec.ID,
			Types:     t.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.products.Insert(ctx, &product); err != nil {
			return saved, err
		}
		saved = append(saved, CreatedProduct{Product: product, Type: t, Section: sec})
	}
	return saved, nil
}

// ListFilter narrows the listing; all matches are exact.
type ListFilter struct {
	Category string
	Section  string // hex id
	Types    string // hex id
}

func (s *Products) List(ctx context.Context, filter ListFilter) ([]models.ExpandedProduct, error) {
	sf := store.ProductFilter{Category: filter.Category}
	if filter.Section != "" {
		id, err := bson.ObjectIDFromHex(filter.Section)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid section id %q", ErrInvalidRequest, filter.Section)
		}
		sf.Section = &id
	}
	if filter.Types != "" {
		id, err := bson.ObjectIDFromHex(filter.Types)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid types id %q", ErrInvalidRequest, filter.Types)
		}
		sf.Types = &id
	}

	products, err := s.products.Find(ctx, sf)
	if err != nil {
		return nil, err
	}
	return s.expander.Products(ctx, products)
}

func (s *Products) Get(ctx context.Context, id bson.ObjectID) (*models.ExpandedProduct, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}
	ep, err := s.expander.Product(ctx, *p)
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

// Update merges the supplied fields into the product. Section/types
// references go through the resolver first: a new type needs a parent
// section from the same payload or from the stored product.
func (s *Products) Update(ctx context.Context, id bson.ObjectID, body dto.UpdateProductDTO) (*models.ExpandedProduct, error) {
	if body.Empty() {
		return nil, fmt.Errorf("%w: no update data provided", ErrInvalidRequest)
	}
	if body.Stock != nil && *body.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidRequest)
	}

	current, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if body.Title != nil {
		set["title"] = *body.Title
	}
	if body.Price != nil {
		set["price"] = *body.Price
	}
	if body.Category != nil {
		set["category"] = *body.Category
	}
	if body.Rating != nil {
		set["rating"] = *body.Rating
	}
	if body.SellerID != nil {
		set["sellerId"] = *body.SellerID
	}
	if body.Stock != nil {
		set["stock"] = *body.Stock
	}
	if body.Images != nil {
		set["images"] = *body.Images
	}

	parentSection := current.Section
	if body.Section != nil {
		sec, err := s.catalog.ResolveSection(ctx, *body.Section)
		if err != nil {
			return nil, err
		}
		set["section"] = sec.ID
		parentSection = sec.ID
	}
	if body.Types != nil {
		t, err := s.catalog.ResolveType(ctx, *body.Types, parentSection)
		if err != nil {
			return nil, err
		}
		set["types"] = t.ID
	}

	set["updatedAt"] = time.Now().UTC()
	updated, err := s.products.Update(ctx, id, set)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}
	if err != nil {
		return nil, err
	}

	ep, err := s.expander.Product(ctx, *updated)
	if err != nil {
		return nil, err
	}
	return &ep, nil
}

func (s *Products) Delete(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	removed, err := s.products.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id.Hex())
	}
	return removed, err
}
