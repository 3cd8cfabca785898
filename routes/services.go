package routes

import (
	"context"
	"time"

	"techshop/models"
	"techshop/repositories"
	"techshop/services"

	"github.com/redis/go-redis/v9"
)

type Options struct {
	CartKey        string
	CatalogKey     string
	AdminPassword  string
	JWTSecret      string
	SearchDebounce time.Duration
	SessionIdleTTL time.Duration
	QueryCacheTTL  time.Duration
	UploadDir      string
	MaxUploadSize  int64
	Uploader       services.ImageUploader
}

// Services holds everything the HTTP handlers depend on.
type Services struct {
	Catalog    *services.CatalogService
	Storefront *services.Storefront
	Carts      *services.CartRegistry
	Browse     *services.BrowseService
	Admin      *services.AdminService
	Import     *services.ImportService
	Images     *services.ImageService
	Cache      *repositories.QueryCache
	UploadDir  string
}

// NewServices loads the persisted catalog and wires the services over store.
// rdb may be nil, which disables the listing cache.
func NewServices(ctx context.Context, store repositories.RecordStore, rdb *redis.Client, opts Options) (*Services, error) {
	admin, err := services.NewAdminService(opts.AdminPassword, []byte(opts.JWTSecret))
	if err != nil {
		return nil, err
	}

	catalog := services.NewCatalogService(ctx, repositories.NewListRepository[models.Product](store, opts.CatalogKey))
	cache := repositories.NewQueryCache(rdb, opts.QueryCacheTTL)
	catalog.OnChange(func(ctx context.Context, version uint64) {
		cache.Invalidate(ctx)
	})

	storefront := services.NewStorefront(catalog, models.DemoProducts)
	browse := services.NewBrowseService(storefront, opts.SearchDebounce, opts.SessionIdleTTL)
	catalog.OnChange(browse.CatalogChanged)

	return &Services{
		Catalog:    catalog,
		Storefront: storefront,
		Carts:      services.NewCartRegistry(store, opts.CartKey, opts.SessionIdleTTL),
		Browse:     browse,
		Admin:      admin,
		Import:     services.NewImportService(catalog),
		Images:     services.NewImageService(catalog, opts.Uploader, opts.UploadDir, opts.MaxUploadSize),
		Cache:      cache,
		UploadDir:  opts.UploadDir,
	}, nil
}
