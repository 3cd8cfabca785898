package routes

import (
	"net/http"

	"techshop/controllers"
	"techshop/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine, svc *Services) {
	productCtrl := &controllers.ProductController{Storefront: svc.Storefront, Cache: svc.Cache}
	cartCtrl := &controllers.CartController{Carts: svc.Carts, Storefront: svc.Storefront}
	browseCtrl := &controllers.BrowseController{Sessions: svc.Browse}
	adminCtrl := &controllers.AdminController{Admin: svc.Admin, Catalog: svc.Catalog, Images: svc.Images}
	importCtrl := &controllers.ImportController{Import: svc.Import}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/categories", productCtrl.GetCategories)
	router.GET("/brands", productCtrl.GetBrands)
	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)

	router.POST("/carts", cartCtrl.CreateCart)
	cart := router.Group("/cart")
	{
		cart.GET("", cartCtrl.GetCart)
		cart.DELETE("", cartCtrl.ClearCart)
		cart.POST("/items", cartCtrl.AddItem)
		cart.GET("/items/:id", cartCtrl.GetItem)
		cart.PATCH("/items/:id", cartCtrl.UpdateItem)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.POST("/checkout", cartCtrl.Checkout)
	}

	browse := router.Group("/browse/sessions")
	{
		browse.POST("", browseCtrl.CreateSession)
		browse.GET("/:id", browseCtrl.GetSession)
		browse.PATCH("/:id", browseCtrl.UpdateSession)
		browse.DELETE("/:id", browseCtrl.CloseSession)
		browse.POST("/:id/navigate", browseCtrl.Navigate)
	}

	router.POST("/admin/login", adminCtrl.Login)
	router.POST("/admin/logout", adminCtrl.Logout)
	router.POST("/admin/mode", adminCtrl.ToggleMode)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminMiddleware(svc.Admin))
	{
		admin.GET("/stats", adminCtrl.GetStats)

		admin.GET("/products", adminCtrl.GetProducts)
		admin.POST("/products", adminCtrl.CreateProduct)
		admin.PATCH("/products/:id", adminCtrl.UpdateProduct)
		admin.DELETE("/products/:id", adminCtrl.DeleteProduct)
		admin.POST("/products/bulk-delete", adminCtrl.BulkDelete)
		admin.POST("/products/bulk-stock", adminCtrl.BulkStock)
		admin.POST("/products/:id/image", adminCtrl.UploadImage)

		admin.GET("/import/template", importCtrl.Template)
		admin.POST("/import/preview", importCtrl.Preview)
		admin.POST("/import", importCtrl.Commit)
	}

	router.Static("/uploads", svc.UploadDir)
}
