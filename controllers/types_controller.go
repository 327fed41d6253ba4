package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/services"
	"github.com/merze/merzebackend/utils"
)

// GET /api/categories — historical route name, lists types.
func GetTypes(s *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := s.ListTypes(c.Request.Context())
		if err != nil {
			writeError(c, err, "Failed to fetch the products by category.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": types})
	}
}

// GET /api/categories/:categoryId
func GetType(s *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("categoryId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}

		t, err := s.GetType(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to fetch product by category.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": t})
	}
}

// POST /api/types
func AddType(s *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateTypeDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		t, err := s.CreateType(c.Request.Context(), body)
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "type name already exists in this section", "field": "name"})
				return
			}
			writeError(c, err, "Failed to create type")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": t})
	}
}

// POST /api/types/:id/images
func AttachTypeImages(s *services.Catalog, storage utils.ImageStorage, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type id"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			return
		}
		files := form.File["images"]
		if err := v.ValidateFiles(files); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		t, err := s.GetType(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to fetch type")
			return
		}

		urls, err := storage.Upload(c.Request.Context(), "types/"+t.Slug, files)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload images", "details": err.Error()})
			return
		}

		updated, err := s.AttachTypeImages(c.Request.Context(), id, urls)
		if err != nil {
			writeError(c, err, "Failed to attach images")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}
