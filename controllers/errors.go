package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/merze/merzebackend/services"
)

// writeError maps service errors onto the HTTP taxonomy: validation
// and reference problems are the client's fault, unknown ids are 404,
// anything else is a store failure surfaced with its detail string.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}
