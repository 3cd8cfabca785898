package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"techshop/config"
	"techshop/middleware"
	"techshop/repositories"
	"techshop/routes"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp builds the router once per serverless instance. The file store is not
// writable there, so it falls back to memory when no shared store is configured.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		config.LoadConfig()

		rdb := config.ConnectRedis()

		var store repositories.RecordStore
		if config.AppConfig.StoreDriver == "file" {
			store = repositories.NewMemoryStore()
		} else {
			var err error
			store, err = config.NewRecordStore(rdb)
			if err != nil {
				log.Printf("Failed to open store, using memory: %v", err)
				store = repositories.NewMemoryStore()
			}
		}

		svc, err := routes.NewServices(context.Background(), store, rdb, config.ServiceOptions())
		if err != nil {
			log.Fatalf("Failed to start services: %v", err)
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware(config.AppConfig.OriginURLs...))

		routes.SetupRoutes(router, svc)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
