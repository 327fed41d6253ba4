package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/services"
)

// POST /api/users
func CreateUser(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateUserDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Necessary details are missing", "details": err.Error()})
			return
		}

		user, err := s.Create(c.Request.Context(), body)
		if err != nil {
			writeError(c, err, "Failed to save user")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User saved successfully", "user": user})
	}
}

// GET /api/users — every user, fully expanded.
func GetUsers(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.List(c.Request.Context())
		if err != nil {
			writeError(c, err, "Failed to fetch the user.")
			return
		}
		if len(users) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": users})
	}
}

// GET /api/user/:id
func GetUser(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		user, err := s.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to fetch user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DELETE /api/user/:id — cascades to the user's addresses and orders.
func DeleteUser(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		removed, err := s.Delete(c.Request.Context(), id)
		if err != nil {
			writeError(c, err, "Failed to delete user")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "user": removed})
	}
}
