package controllers

import (
	"net/http"

	"techshop/models"
	"techshop/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CartHeader = "X-Cart-ID"

type CartController struct {
	Carts      *services.CartRegistry
	Storefront *services.Storefront
}

// cart resolves the cart named by the X-Cart-ID header; no header selects the default cart.
func (ctrl *CartController) cart(c *gin.Context) (*services.CartService, string, bool) {
	cartID := c.GetHeader(CartHeader)
	if cartID != "" {
		parsed, err := uuid.Parse(cartID)
		if err != nil {
			badRequest(c, "Invalid "+CartHeader+" header", err)
			return nil, "", false
		}
		cartID = parsed.String()
	}
	return ctrl.Carts.Cart(c.Request.Context(), cartID), cartID, true
}

// @Summary Create cart
// @Description Issue a new cart id to send in the X-Cart-ID header
// @Tags Cart
// @Produce json
// @Success 201 {object} models.Response
// @Router /carts [post]
func (ctrl *CartController) CreateCart(c *gin.Context) {
	cartID := uuid.NewString()
	ctrl.Carts.Cart(c.Request.Context(), cartID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Cart created", "data": gin.H{"cart_id": cartID}})
}

// @Summary Get cart
// @Description Get cart items with total item count and total price
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	cart, cartID, ok := ctrl.cart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart retrieved", "data": cart.Summary(cartID)})
}

// @Summary Add to cart
// @Description Add one unit of a product to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Param request body models.AddToCartRequest true "Product"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	cart, cartID, ok := ctrl.cart(c)
	if !ok {
		return
	}

	product, found := ctrl.Storefront.Product(req.ProductID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
		return
	}

	if err := cart.AddToCart(c.Request.Context(), product); err != nil {
		respondError(c, "Failed to add to cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": product.Name + " added to cart", "data": cart.Summary(cartID)})
}

// @Summary Check cart item
// @Description Report whether a product is in the cart and its quantity
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [get]
func (ctrl *CartController) GetItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cart, _, ok := ctrl.cart(c)
	if !ok {
		return
	}

	quantity := 0
	for _, item := range cart.Items() {
		if item.ID == id {
			quantity = item.Quantity
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart item checked",
		"data":    gin.H{"product_id": id, "in_cart": cart.IsInCart(id), "quantity": quantity},
	})
}

// @Summary Update quantity
// @Description Set the quantity of a cart line; zero or less removes it
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Param id path int true "Product ID"
// @Param request body models.UpdateQuantityRequest true "Quantity"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}

	cart, cartID, ok := ctrl.cart(c)
	if !ok {
		return
	}

	if err := cart.UpdateQuantity(c.Request.Context(), id, *req.Quantity); err != nil {
		respondError(c, "Failed to update quantity", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Quantity updated", "data": cart.Summary(cartID)})
}

// @Summary Remove from cart
// @Description Remove a product line from the cart
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Router /cart/items/{id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cart, cartID, ok := ctrl.cart(c)
	if !ok {
		return
	}

	if err := cart.RemoveFromCart(c.Request.Context(), id); err != nil {
		respondError(c, "Failed to remove item", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Item removed from cart", "data": cart.Summary(cartID)})
}

// @Summary Clear cart
// @Description Remove every line and erase the stored cart
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Success 200 {object} models.Response
// @Router /cart [delete]
func (ctrl *CartController) ClearCart(c *gin.Context) {
	cart, cartID, ok := ctrl.cart(c)
	if !ok {
		return
	}

	if err := cart.ClearCart(c.Request.Context()); err != nil {
		respondError(c, "Failed to clear cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared", "data": cart.Summary(cartID)})
}

// @Summary Checkout
// @Description Checkout is not implemented; the cart is left untouched
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart ID"
// @Success 200 {object} models.Response
// @Router /cart/checkout [post]
func (ctrl *CartController) Checkout(c *gin.Context) {
	cart, cartID, ok := ctrl.cart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": false, "message": "Checkout is not available yet", "data": cart.Summary(cartID)})
}
