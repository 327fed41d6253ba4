package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/services"
	"github.com/merze/merzebackend/utils"
)

// GET /api/sections
func GetSections(s *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		sections, err := s.ListSections(c.Request.Context())
		if err != nil {
			writeError(c, err, "Failed to fetch sections")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sections})
	}
}

// POST /api/sections
func AddSection(s *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateSectionDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		section, err := s.CreateSection(c.Request.Context(), body)
		if err != nil {
			if utils.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "section name already exists", "field": "name"})
				return
			}
			writeError(c, err, "Failed to create section")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": section})
	}
}

// GET /api/sections/:id
func GetSection(s *services.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
			return
		}

		section, err := s.GetSection(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to fetch section")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": section})
	}
}

// POST /api/sections/:id/images — multipart upload; the stored image
// list gets the new public URLs appended.
func AttachSectionImages(s *services.Catalog, storage utils.ImageStorage, v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid section id"})
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

		section, err := s.GetSection(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to fetch section")
			return
		}

		urls, err := storage.Upload(c.Request.Context(), "sections/"+section.Slug, files)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload images", "details": err.Error()})
			return
		}

		updated, err := s.AttachSectionImages(c.Request.Context(), id, urls)
		if err != nil {
			writeError(c, err, "Failed to attach images")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}
