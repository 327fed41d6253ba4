package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/store/storetest"
)

func TestCatalog_ResolveByName_GetOrCreate(t *testing.T) {
	mem := storetest.New()
	catalog := NewCatalog(mem.Sections, mem.Types)
	ctx := context.Background()

	sec, err := catalog.ResolveSection(ctx, dto.CategoryRef{Name: "Men"})
	require.NoError(t, err)
	require.False(t, sec.ID.IsZero())
	assert.Equal(t, "Men", sec.Name)
	assert.Equal(t, "men", sec.Slug)
	assert.NotEmpty(t, sec.Images)

	// resolving the same name again returns the same identifier
	again, err := catalog.ResolveSection(ctx, dto.CategoryRef{Name: "Men"})
	require.NoError(t, err)
	assert.Equal(t, sec.ID, again.ID)
	assert.Len(t, mem.SectionDocs, 1)
}

func TestCatalog_ResolveTypeByName_ScopedToSection(t *testing.T) {
	mem := storetest.New()
	catalog := NewCatalog(mem.Sections, mem.Types)
	ctx := context.Background()

	men, err := catalog.ResolveSection(ctx, dto.CategoryRef{Name: "Men"})
	require.NoError(t, err)
	women, err := catalog.ResolveSection(ctx, dto.CategoryRef{Name: "Women"})
	require.NoError(t, err)

	menShirt, err := catalog.ResolveType(ctx, dto.CategoryRef{Name: "Shirt"}, men.ID)
	require.NoError(t, err)
	assert.Equal(t, men.ID, menShirt.Section)

	// same name under another section is a distinct type
	womenShirt, err := catalog.ResolveType(ctx, dto.CategoryRef{Name: "Shirt"}, women.ID)
	require.NoError(t, err)
	assert.NotEqual(t, menShirt.ID, womenShirt.ID)

	// and re-resolving under the first section reuses the original
	again, err := catalog.ResolveType(ctx, dto.CategoryRef{Name: "Shirt"}, men.ID)
	require.NoError(t, err)
	assert.Equal(t, menShirt.ID, again.ID)
	assert.Len(t, mem.TypeDocs, 2)
}

func TestCatalog_ResolveByID_DoesNotCreate(t *testing.T) {
	mem := storetest.New()
	catalog := NewCatalog(mem.Sections, mem.Types)
	ctx := context.Background()

	missing := bson.NewObjectID()

	_, err := catalog.ResolveSection(ctx, dto.CategoryRef{ID: missing.Hex()})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, mem.SectionDocs)

	_, err = catalog.ResolveType(ctx, dto.CategoryRef{ID: missing.Hex()}, bson.ObjectID{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, mem.TypeDocs)
}

func TestCatalog_ResolveType_NoParentSection(t *testing.T) {
	mem := storetest.New()
	catalog := NewCatalog(mem.Sections, mem.Types)

	_, err := catalog.ResolveType(context.Background(), dto.CategoryRef{Name: "Shoes"}, bson.ObjectID{})
	assert.ErrorIs(t, err, ErrInvalidReference)
	assert.Empty(t, mem.TypeDocs)
}

func TestCatalog_ResolveSection_BadRef(t *testing.T) {
	mem := storetest.New()
	catalog := NewCatalog(mem.Sections, mem.Types)
	ctx := context.Background()

	_, err := catalog.ResolveSection(ctx, dto.CategoryRef{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = catalog.ResolveSection(ctx, dto.CategoryRef{ID: "not-a-hex-id"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCatalog_CreateType_RequiresExistingSection(t *testing.T) {
	mem := storetest.New()
	catalog := NewCatalog(mem.Sections, mem.Types)
	ctx := context.Background()

	_, err := catalog.CreateType(ctx, dto.CreateTypeDTO{Name: "Shoes", Section: bson.NewObjectID().Hex()})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, mem.TypeDocs)

	sec, err := catalog.CreateSection(ctx, dto.CreateSectionDTO{Name: "Kids"})
	require.NoError(t, err)

	created, err := catalog.CreateType(ctx, dto.CreateTypeDTO{Name: "Shoes", Section: sec.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, sec.ID, created.Section)
}
