package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merze/merzebackend/services"
	"github.com/merze/merzebackend/store/storetest"
)

func newTestRouter(mem *storetest.Memory) *gin.Engine {
	gin.SetMode(gin.TestMode)

	expander := services.NewExpander(mem.Stores())
	catalog := services.NewCatalog(mem.Sections, mem.Types)
	products := services.NewProducts(mem.Products, catalog, expander)
	users := services.NewUsers(mem.Users, mem.Addresses, mem.Orders, expander)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/products", GetProducts(products))
	api.POST("/create-products", CreateProducts(products))
	api.GET("/products/:productId", GetProduct(products))
	api.POST("/products/:productId", UpdateProduct(products))
	api.DELETE("/products/:productId", DeleteProduct(products))
	api.GET("/sections", GetSections(catalog))
	api.POST("/sections", AddSection(catalog))
	api.GET("/sections/:id", GetSection(catalog))
	api.GET("/categories", GetTypes(catalog))
	api.GET("/categories/:categoryId", GetType(catalog))
	api.POST("/types", AddType(catalog))
	api.POST("/users", CreateUser(users))
	api.GET("/users", GetUsers(users))
	api.GET("/user/:id", GetUser(users))
	api.DELETE("/user/:id", DeleteUser(users))
	api.POST("/users/:id/addresses", AddAddress(users))
	api.GET("/users/:id/addresses", GetAddresses(users))
	api.DELETE("/users/:id/addresses/:addressId", RemoveAddress(users))
	api.POST("/orders", PlaceOrder(users))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateProducts_GetOrCreateScenario(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	payload := map[string]any{
		"title":    "Shirt",
		"price":    20,
		"category": "clothing",
		"rating":   4.5,
		"sellerId": "s-1",
		"stock":    3,
		"images":   []string{"https://cdn.example.com/shirt.jpg"},
		"section":  map[string]any{"name": "Men"},
		"types":    map[string]any{"name": "Shirt"},
	}

	w := doJSON(t, r, http.MethodPost, "/api/create-products", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	saved := body["products"].([]any)
	require.Len(t, saved, 1)
	first := saved[0].(map[string]any)
	section := first["section"].(map[string]any)
	typ := first["type"].(map[string]any)
	assert.Equal(t, "Men", section["name"])
	assert.Equal(t, "Shirt", typ["name"])

	// posting the same names again reuses the section/type identifiers
	w = doJSON(t, r, http.MethodPost, "/api/create-products", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	body = decodeBody(t, w)
	again := body["products"].([]any)[0].(map[string]any)
	assert.Equal(t, section["id"], again["section"].(map[string]any)["id"])
	assert.Equal(t, typ["id"], again["type"].(map[string]any)["id"])
	assert.Len(t, mem.SectionDocs, 1)
	assert.Len(t, mem.TypeDocs, 1)
	assert.Len(t, mem.ProductDocs, 2)
}

func TestCreateProducts_BatchBody(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	payload := []map[string]any{
		{
			"title": "Shirt", "price": 20,
			"section": map[string]any{"name": "Men"},
			"types":   map[string]any{"name": "Shirt"},
		},
		{
			"title": "Dress", "price": 35,
			"section": map[string]any{"name": "Women"},
			"types":   map[string]any{"name": "Dress"},
		},
	}

	w := doJSON(t, r, http.MethodPost, "/api/create-products", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, mem.ProductDocs, 2)
	assert.Len(t, mem.SectionDocs, 2)
}

func TestCreateProducts_MissingFields(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/create-products", map[string]any{
		"title": "Shirt",
		"price": 20,
		// no section/types
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mem.ProductDocs)
}

func TestGetProducts_FilterBySectionExpands(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/create-products", []map[string]any{
		{"title": "Shirt", "price": 20, "section": map[string]any{"name": "Men"}, "types": map[string]any{"name": "Shirt"}},
		{"title": "Dress", "price": 35, "section": map[string]any{"name": "Women"}, "types": map[string]any{"name": "Dress"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	sectionID := mem.SectionDocs[0].ID.Hex() // "Men"

	w = doJSON(t, r, http.MethodGet, "/api/products?section="+sectionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].([]any)
	require.Len(t, data, 1)
	item := data[0].(map[string]any)
	assert.Equal(t, "Shirt", item["title"])
	require.NotNil(t, item["section"])
	assert.Equal(t, sectionID, item["section"].(map[string]any)["id"])
	require.NotNil(t, item["types"])
}

func TestGetProducts_EmptyIsNoContent(t *testing.T) {
	r := newTestRouter(storetest.New())

	w := doJSON(t, r, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetProduct_UnknownID(t *testing.T) {
	r := newTestRouter(storetest.New())

	w := doJSON(t, r, http.MethodGet, "/api/products/68b8a8f29c1d4e0001000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/products/not-hex", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProduct_RejectsUnknownFields(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/create-products", map[string]any{
		"title": "Shirt", "price": 20,
		"section": map[string]any{"name": "Men"},
		"types":   map[string]any{"name": "Shirt"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := mem.ProductDocs[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/products/"+id, map[string]any{
		"price": 25,
		"admin": true, // not an updatable field
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 20.0, mem.ProductDocs[0].Price)

	w = doJSON(t, r, http.MethodPost, "/api/products/"+id, map[string]any{"price": 25})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25.0, mem.ProductDocs[0].Price)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"name": "Asha", "surname": "Rao", "gender": "female",
		"email": "asha@example.com", "phone": "9999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := mem.UserDocs[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"user":    userID,
		"item":    []any{},
		"address": "68b8a8f29c1d4e0001000000",
		"payment": map[string]any{"method": "card"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mem.OrderDocs)
}

func TestDeleteUser_Cascades(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"name": "Asha", "surname": "Rao", "gender": "female",
		"email": "asha@example.com", "phone": "9999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := mem.UserDocs[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/users/"+userID+"/addresses", map[string]any{
		"area": "MG Road", "city": "Bengaluru", "state": "Karnataka",
		"pincode": 560001, "addressType": "Home",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	addrID := mem.AddressDocs[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"user": userID,
		"item": []map[string]any{
			{"title": "Shirt", "price": 20, "quantity": 1},
		},
		"address": addrID,
		"payment": map[string]any{"method": "cod"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete, "/api/user/"+userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mem.AddressDocs)
	assert.Empty(t, mem.OrderDocs)
	assert.Empty(t, mem.UserDocs)

	w = doJSON(t, r, http.MethodGet, "/api/user/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddAddress_InvalidType(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/users", map[string]any{
		"name": "Asha", "surname": "Rao", "gender": "female",
		"email": "asha@example.com", "phone": "9999999999",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID := mem.UserDocs[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/users/"+userID+"/addresses", map[string]any{
		"area": "MG Road", "city": "Bengaluru", "state": "Karnataka",
		"pincode": 560001, "addressType": "Vacation",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mem.AddressDocs)
}

func TestSectionsAndTypesEndpoints(t *testing.T) {
	mem := storetest.New()
	r := newTestRouter(mem)

	w := doJSON(t, r, http.MethodPost, "/api/sections", map[string]any{"name": "Men"})
	require.Equal(t, http.StatusCreated, w.Code)
	sectionID := mem.SectionDocs[0].ID.Hex()

	w = doJSON(t, r, http.MethodPost, "/api/types", map[string]any{"name": "Shoes", "section": sectionID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/types", map[string]any{"name": "Shoes", "section": "68b8a8f29c1d4e0001000000"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/sections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/sections/"+sectionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	typeID := mem.TypeDocs[0].ID.Hex()
	w = doJSON(t, r, http.MethodGet, "/api/categories/"+typeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Shoes", body["data"].(map[string]any)["name"])
}
