package main

import (
	"context"
	"log"
	"os"

	"techshop/config"
	_ "techshop/docs"
	"techshop/middleware"
	"techshop/routes"

	"github.com/gin-gonic/gin"
)

// @title TechShop API
// @version 1.0
// @description Computer parts storefront: catalog browsing, cart and admin catalog management.
// @host localhost:8082
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by the admin session token.
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	rdb := config.ConnectRedis()
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Println("Running without cache")
	}

	store, err := config.NewRecordStore(rdb)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	svc, err := routes.NewServices(context.Background(), store, rdb, config.ServiceOptions())
	if err != nil {
		log.Fatalf("Failed to start services: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(config.AppConfig.OriginURLs...))
	routes.SetupRoutes(router, svc)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
