package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/services"
)

// POST /api/users/:id/addresses
func AddAddress(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var body dto.CreateAddressDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Necessary fields are missing", "details": err.Error()})
			return
		}

		addr, err := s.AddAddress(c.Request.Context(), userID, body)
		if err != nil {
			writeError(c, err, "Failed to save the address")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Address saved successfully", "address": addr})
	}
}

// GET /api/users/:id/addresses
func GetAddresses(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		addresses, err := s.ListAddresses(c.Request.Context(), userID)
		if err != nil {
			writeError(c, err, "Failed to fetch addresses")
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": addresses})
	}
}

// DELETE /api/users/:id/addresses/:addressId
func RemoveAddress(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		addressID, err := bson.ObjectIDFromHex(c.Param("addressId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address id"})
			return
		}

		if err := s.RemoveAddress(c.Request.Context(), userID, addressID); err != nil {
			writeError(c, err, "Failed to delete address")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
	}
}
