package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/services"
)

// GET /api/products?category=&section=&types=
func GetProducts(s *services.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := services.ListFilter{
			Category: strings.TrimSpace(c.Query("category")),
			Section:  strings.TrimSpace(c.Query("section")),
			Types:    strings.TrimSpace(c.Query("types")),
		}

		products, err := s.List(c.Request.Context(), filter)
		if err != nil {
			writeError(c, err, "Failed to fetch products")
			return
		}

		if len(products) == 0 {
			c.JSON(http.StatusNoContent, gin.H{"data": products, "error": "No data exists."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// POST /api/create-products — the body is either a single product
// object or an array of them.
func CreateProducts(s *services.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		var items []dto.CreateProductDTO
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &items); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
				return
			}
		} else {
			var single dto.CreateProductDTO
			if err := json.Unmarshal(trimmed, &single); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
				return
			}
			items = []dto.CreateProductDTO{single}
		}

		if len(items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required product fields"})
			return
		}

		saved, err := s.Create(c.Request.Context(), items)
		if err != nil {
			writeError(c, err, "Failed to create the products")
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "products saved successfully", "products": saved})
	}
}

// GET /api/products/:productId
func GetProduct(s *services.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := s.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to fetch the product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": product})
	}
}

// POST /api/products/:productId — partial update; unknown body fields
// are rejected so arbitrary fields can't ride into the document.
func UpdateProduct(s *services.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var body dto.UpdateProductDTO
		dec := json.NewDecoder(c.Request.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
			return
		}

		updated, err := s.Update(c.Request.Context(), id, body)
		if err != nil {
			writeError(c, err, "Failed to update the products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": updated})
	}
}

// DELETE /api/products/:productId
func DeleteProduct(s *services.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		removed, err := s.Delete(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to delete product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully", "product": removed})
	}
}
