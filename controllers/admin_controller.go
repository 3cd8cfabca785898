package controllers

import (
	"net/http"
	"strings"

	"techshop/models"
	"techshop/services"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Admin   *services.AdminService
	Catalog *services.CatalogService
	Images  *services.ImageService
}

// @Summary Admin login
// @Description Check the shared admin password and get a session token
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param request body models.AdminLoginRequest true "Password"
// @Success 200 {object} models.Response{data=models.LoginResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/login [post]
func (ctrl *AdminController) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Password is required", err)
		return
	}

	token, err := ctrl.Admin.Login(req.Password)
	if err != nil {
		respondError(c, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful", "data": models.LoginResponse{Token: token}})
}

// @Summary Admin logout
// @Description Revoke every admin session and leave admin mode
// @Tags Admin - Auth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/logout [post]
func (ctrl *AdminController) Logout(c *gin.Context) {
	ctrl.Admin.Logout()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out", "data": ctrl.status(c)})
}

// @Summary Toggle admin mode
// @Description Switch between storefront and admin mode. Entering admin mode requires a new login.
// @Tags Admin - Auth
// @Produce json
// @Success 200 {object} models.Response{data=models.AdminStatus}
// @Router /admin/mode [post]
func (ctrl *AdminController) ToggleMode(c *gin.Context) {
	ctrl.Admin.ToggleAdminMode()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin mode toggled", "data": ctrl.status(c)})
}

func (ctrl *AdminController) status(c *gin.Context) models.AdminStatus {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	return models.AdminStatus{
		AdminMode:     ctrl.Admin.AdminMode(),
		Authenticated: token != "" && ctrl.Admin.ValidateToken(token) == nil,
	}
}

// @Summary List catalog
// @Description Get the admin catalog, optionally filtered by name, category or brand
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} models.ListResponse
// @Router /admin/products [get]
func (ctrl *AdminController) GetProducts(c *gin.Context) {
	products := ctrl.Catalog.SearchAdmin(c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Products retrieved", "data": products, "total": len(products)})
}

// @Summary Create product
// @Description Add a product to the catalog (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ProductInput true "Product"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products [post]
func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.Catalog.AddProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created successfully", "data": product})
}

// @Summary Update product
// @Description Update the given fields of a product (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body models.ProductPatch true "Changed fields"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [patch]
func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	product, err := ctrl.Catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "Failed to update product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully", "data": product})
}

// @Summary Delete product
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id} [delete]
func (ctrl *AdminController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	removed, err := ctrl.Catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to delete product", err)
		return
	}
	if removed == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
}

// @Summary Delete products
// @Description Delete every product whose id is listed (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.BulkDeleteRequest true "Product IDs"
// @Success 200 {object} models.Response
// @Router /admin/products/bulk-delete [post]
func (ctrl *AdminController) BulkDelete(c *gin.Context) {
	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	removed, err := ctrl.Catalog.DeleteMultipleProducts(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, "Failed to delete products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Products deleted", "data": gin.H{"deleted": removed}})
}

// @Summary Update stock
// @Description Mark every listed product in or out of stock (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.BulkStockRequest true "Product IDs and stock flag"
// @Success 200 {object} models.Response
// @Router /admin/products/bulk-stock [post]
func (ctrl *AdminController) BulkStock(c *gin.Context) {
	var req models.BulkStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	updated, err := ctrl.Catalog.BulkUpdateStock(c.Request.Context(), req.IDs, *req.InStock)
	if err != nil {
		respondError(c, "Failed to update stock", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stock updated", "data": gin.H{"updated": updated}})
}

// @Summary Upload product image
// @Description Replace a product image (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Product image"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/products/{id}/image [post]
func (ctrl *AdminController) UploadImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "Image file is required", err)
		return
	}

	product, err := ctrl.Images.UploadProductImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, "Failed to upload image", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image uploaded successfully", "data": product})
}

// @Summary Catalog stats
// @Description Get product counts, stock totals and catalog value (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.ProductStats}
// @Router /admin/stats [get]
func (ctrl *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Stats retrieved", "data": ctrl.Catalog.Stats()})
}
