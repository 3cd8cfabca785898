package config

import (
	"fmt"
	"log"

	"techshop/libs"
	"techshop/repositories"
	"techshop/routes"

	"github.com/redis/go-redis/v9"
)

// NewRecordStore builds the store selected by STORE_DRIVER. The redis driver reuses rdb.
func NewRecordStore(rdb *redis.Client) (repositories.RecordStore, error) {
	switch AppConfig.StoreDriver {
	case "memory":
		log.Println("Using in-memory store, data is lost on restart")
		return repositories.NewMemoryStore(), nil
	case "file", "":
		return repositories.NewFileStore(AppConfig.DataDir)
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("store driver redis requires a reachable redis server")
		}
		return repositories.NewRedisStore(rdb, AppConfig.RedisPrefix), nil
	case "postgres":
		return repositories.NewPostgresStore(ConnectDB()), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", AppConfig.StoreDriver)
	}
}

// ServiceOptions maps the loaded configuration onto the service wiring options.
// Cloudinary is used for product images only when its credentials are set.
func ServiceOptions() routes.Options {
	opts := routes.Options{
		CartKey:        AppConfig.CartKey,
		CatalogKey:     AppConfig.CatalogKey,
		AdminPassword:  AppConfig.AdminPassword,
		JWTSecret:      AppConfig.JWTSecret,
		SearchDebounce: AppConfig.SearchDebounce,
		SessionIdleTTL: AppConfig.SessionIdleTTL,
		QueryCacheTTL:  AppConfig.QueryCacheTTL,
		UploadDir:      AppConfig.UploadDir,
		MaxUploadSize:  AppConfig.MaxUploadSize,
	}

	cloud := libs.CloudinaryConfig{
		URL:       AppConfig.CloudinaryURL,
		CloudName: AppConfig.CloudName,
		APIKey:    AppConfig.CloudAPIKey,
		APISecret: AppConfig.CloudAPISecret,
		Folder:    AppConfig.CloudFolder,
	}
	if cloud.Configured() {
		uploader, err := libs.NewCloudinaryUploader(cloud)
		if err != nil {
			log.Printf("Cloudinary disabled: %v", err)
		} else {
			opts.Uploader = uploader
		}
	}
	return opts
}
