package middleware

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const devOrigin = "http://localhost:5173"

// CORSMiddleware allows the local storefront dev server plus the configured origins.
// Cart requests carry X-Cart-ID and the import template is an attachment.
func CORSMiddleware(origins ...string) gin.HandlerFunc {
	allowed := []string{devOrigin}
	for _, origin := range origins {
		if !slices.Contains(allowed, origin) {
			allowed = append(allowed, origin)
		}
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Cart-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	})
}
