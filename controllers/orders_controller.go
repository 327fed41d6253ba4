package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merze/merzebackend/dto"
	"github.com/merze/merzebackend/services"
)

// POST /api/orders
func PlaceOrder(s *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateOrderDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Users, products, address or payment are required to place order.", "details": err.Error()})
			return
		}

		order, err := s.PlaceOrder(c.Request.Context(), body)
		if err != nil {
			writeError(c, err, "Failed to place the order")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "order successfully placed", "orderData": order})
	}
}
