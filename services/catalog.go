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
	"github.com/merze/merzebackend/utils"
)

// Catalog resolves section/type references for products. A reference
// by id is lookup-only; a reference by name is get-or-create, so a
// read-looking resolve may write new documents.
type Catalog struct {
	sections store.SectionStore
	types    store.TypeStore
}

func NewCatalog(sections store.SectionStore, types store.TypeStore) *Catalog {
	return &Catalog{sections: sections, types: types}
}

func (c *Catalog) ResolveSection(ctx context.Context, ref dto.CategoryRef) (*models.Section, error) {
	switch {
	case ref.ID != "":
		id, err := bson.ObjectIDFromHex(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid section id %q", ErrInvalidRequest, ref.ID)
		}
		sec, err := c.sections.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: section %s", ErrNotFound, ref.ID)
		}
		return sec, err

	case ref.Name != "":
		sec, err := c.sections.FindByName(ctx, ref.Name)
		if err == nil {
			return sec, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		now := time.Now().UTC()
		sec = &models.Section{
			Name: ref.Name,
			Slug: utils.GenerateSlug(ref.Name),
			// schema requires a non-nil image list
			Images:    []string{""},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := c.sections.Insert(ctx, sec); err != nil {
			return nil, err
		}
		return sec, nil

	default:
		return nil, fmt.Errorf("%w: section reference needs an id or a name", ErrInvalidRequest)
	}
}

// ResolveType resolves a type reference. Name-mode needs the parent
// section to scope the lookup and to attach on create; callers pass
// the section they resolved alongside, or the product's current one.
func (c *Catalog) ResolveType(ctx context.Context, ref dto.CategoryRef, sectionID bson.ObjectID) (*models.Type, error) {
	switch {
	case ref.ID != "":
		id, err := bson.ObjectIDFromHex(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid type id %q", ErrInvalidRequest, ref.ID)
		}
		t, err := c.types.FindByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: type %s", ErrNotFound, ref.ID)
		}
		return t, err

	case ref.Name != "":
		if sectionID.IsZero() {
			return nil, fmt.Errorf("%w: cannot create type %q without a parent section", ErrInvalidReference, ref.Name)
		}
		t, err := c.types.FindByName(ctx, sectionID, ref.Name)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		now := time.Now().UTC()
		t = &models.Type{
			Name:      ref.Name,
			Slug:      utils.GenerateSlug(ref.Name),
			Images:    []string{""},
			Section:   sectionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := c.types.Insert(ctx, t); err != nil {
			return nil, err
		}
		return t, nil

	default:
		return nil, fmt.Errorf("%w: type reference needs an id or a name", ErrInvalidRequest)
	}
}

// ResolvePair resolves a product's section and type for creation.
// The section goes first so a freshly created type can reference it.
func (c *Catalog) ResolvePair(ctx context.Context, section, types dto.CategoryRef) (*models.Section, *models.Type, error) {
	sec, err := c.ResolveSection(ctx, section)
	if err != nil {
		return nil, nil, err
	}
	t, err := c.ResolveType(ctx, types, sec.ID)
	if err != nil {
		return nil, nil, err
	}
	return sec, t, nil
}

// CreateSection inserts a named section directly (sections endpoint,
// not the product resolver). Duplicate names surface as store errors
// via the unique index.
func (c *Catalog) CreateSection(ctx context.Context, body dto.CreateSectionDTO) (*models.Section, error) {
	now := time.Now().UTC()
	images := body.Images
	if images == nil {
		images = []string{""}
	}
	sec := &models.Section{
		Name:      body.Name,
		Slug:      utils.GenerateSlug(body.Name),
		Images:    images,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := c.sections.Insert(ctx, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// CreateType inserts a type under an existing section; the parent must
// resolve first.
func (c *Catalog) CreateType(ctx context.Context, body dto.CreateTypeDTO) (*models.Type, error) {
	sectionID, err := bson.ObjectIDFromHex(body.Section)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid section id %q", ErrInvalidRequest, body.Section)
	}
	if _, err := c.sections.FindByID(ctx, sectionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: section %s", ErrNotFound, body.Section)
		}
		return nil, err
	}

	now := time.Now().UTC()
	images := body.Images
	if images == nil {
		images = []string{""}
	}
	t := &models.Type{
		Name:      body.Name,
		Slug:      utils.GenerateSlug(body.Name),
		Images:    images,
		Section:   sectionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := c.types.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *Catalog) ListSections(ctx context.Context) ([]models.Section, error) {
	return c.sections.List(ctx)
}

func (c *Catalog) GetSection(ctx context.Context, id bson.ObjectID) (*models.Section, error) {
	sec, err := c.sections.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: section %s", ErrNotFound, id.Hex())
	}
	return sec, err
}

func (c *Catalog) ListTypes(ctx context.Context) ([]models.Type, error) {
	return c.types.List(ctx)
}

func (c *Catalog) GetType(ctx context.Context, id bson.ObjectID) (*models.Type, error) {
	t, err := c.types.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: type %s", ErrNotFound, id.Hex())
	}
	return t, err
}

func (c *Catalog) AttachSectionImages(ctx context.Context, id bson.ObjectID, urls []string) (*models.Section, error) {
	if err := c.sections.AppendImages(ctx, id, urls); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: section %s", ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return c.sections.FindByID(ctx, id)
}

func (c *Catalog) AttachTypeImages(ctx context.Context, id bson.ObjectID, urls []string) (*models.Type, error) {
	if err := c.types.AppendImages(ctx, id, urls); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: type %s", ErrNotFound, id.Hex())
		}
		return nil, err
	}
	return c.types.FindByID(ctx, id)
}
