package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"techshop/models"
	"techshop/services"
	"techshop/utils"

	"github.com/gin-gonic/gin"
)

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid id"})
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

// respondError maps service errors onto the JSON error envelope.
func respondError(c *gin.Context, message string, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Validation failed",
			Error:   err.Error(),
			Fields:  validationErr.Fields,
		})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Browse session not found"})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid password"})
	case errors.Is(err, services.ErrImportFormat),
		errors.Is(err, services.ErrEmptyImport),
		errors.Is(err, services.ErrUnsupportedFile),
		errors.Is(err, utils.ErrFileTooLarge),
		errors.Is(err, utils.ErrInvalidFileType):
		badRequest(c, message, err)
	default:
		log.Printf("%s: %v", message, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: message,
			Error:   err.Error(),
		})
	}
}
