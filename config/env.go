package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	StoreDriver    string
	DataDir        string
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RedisURL       string
	RedisAddr      string
	RedisPassword  string
	RedisPrefix    string
	QueryCacheTTL  time.Duration
	CartKey        string
	CatalogKey     string
	AdminPassword  string
	JWTSecret      string
	SearchDebounce time.Duration
	SessionIdleTTL time.Duration
	UploadDir      string
	MaxUploadSize  int64
	OriginURLs     []string
	CloudinaryURL  string
	CloudName      string
	CloudAPIKey    string
	CloudAPISecret string
	CloudFolder    string
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	adminPassword := getEnv("ADMIN_PASSWORD_HASH", getEnv("ADMIN_PASSWORD", "admin123"))

	AppConfig = &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("APP_PORT", getEnv("PORT", "8082")),
		StoreDriver:    getEnv("STORE_DRIVER", "file"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "techshop"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisPrefix:    getEnv("REDIS_PREFIX", "techshop:"),
		QueryCacheTTL:  getDuration("QUERY_CACHE_TTL", 5*time.Minute),
		CartKey:        getEnv("CART_KEY", "techShopCart"),
		CatalogKey:     getEnv("CATALOG_KEY", "techShopProducts"),
		AdminPassword:  adminPassword,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SearchDebounce: getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		SessionIdleTTL: getDuration("SESSION_IDLE_TTL", 30*time.Minute),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:  maxUploadSize,
		OriginURLs:     getList("ORIGIN_URL"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		CloudName:      os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudFolder:    getEnv("CLOUDINARY_FOLDER", "products"),
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Store driver: %s", AppConfig.StoreDriver)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getList splits a comma-separated variable, dropping blank entries.
func getList(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
