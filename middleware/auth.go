package middleware

import (
	"net/http"
	"strings"

	"techshop/models"
	"techshop/services"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware requires a Bearer token issued by the admin gate in its current generation.
func AdminMiddleware(admin *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		if err := admin.ValidateToken(tokenParts[1]); err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired admin session",
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		c.Set("admin", true)
		c.Next()
	}
}
