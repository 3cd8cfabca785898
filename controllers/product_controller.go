package controllers

import (
	"encoding/json"
	"net/http"

	"techshop/models"
	"techshop/repositories"
	"techshop/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Storefront *services.Storefront
	Cache      *repositories.QueryCache
}

// @Summary Get categories
// @Description Get category filter options: "All", the suggested categories, then any others in use
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Categories retrieved", "data": ctrl.Storefront.Categories()})
}

// @Summary Get brands
// @Description Get brand filter options: "All", the suggested brands, then any others in use
// @Tags Categories
// @Produce json
// @Success 200 {object} models.Response
// @Router /brands [get]
func (ctrl *ProductController) GetBrands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Brands retrieved", "data": ctrl.Storefront.Brands()})
}

// @Summary Get products
// @Description Search, filter and sort the storefront products
// @Tags Products
// @Produce json
// @Param search query string false "Search name, category, specs and brand"
// @Param category query string false "Category" default(All)
// @Param brand query string false "Brand" default(All)
// @Param sort query string false "Sort order" Enums(name, price-low, price-high, rating, discount)
// @Param min_price query string false "Minimum effective price"
// @Param max_price query string false "Maximum effective price"
// @Success 200 {object} models.ListResponse
// @Router /products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var spec models.QuerySpec
	if err := c.ShouldBindQuery(&spec); err != nil {
		badRequest(c, "Invalid query", err)
		return
	}
	spec = spec.Normalize()

	ctx := c.Request.Context()
	cacheKey := ctrl.Cache.Key(ctrl.Storefront.Version(), spec)
	if cached, ok := ctrl.Cache.Get(ctx, cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		return
	}

	result := services.RunQuery(ctrl.Storefront.Products(), spec)
	response := gin.H{
		"success":        true,
		"message":        "Products retrieved",
		"data":           result.Products,
		"total":          result.Total,
		"active_filters": result.ActiveFilters,
		"spec":           result.Spec,
		"fallback":       ctrl.Storefront.UsingFallback(),
	}

	if ctrl.Cache.Enabled() {
		if data, err := json.Marshal(response); err == nil {
			ctrl.Cache.Set(ctx, cacheKey, data)
		}
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get product by ID
// @Description Get product details
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, found := ctrl.Storefront.Product(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product retrieved", "data": p})
}
