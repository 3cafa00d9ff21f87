package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rl1809/warung-pos/internal/core/domain"
	"github.com/rl1809/warung-pos/internal/core/service"
)

type HTTPHandler struct {
	catalog  *service.CatalogService
	cart     *service.CartService
	checkout *service.CheckoutService
	adminPIN string
	logger   *zap.Logger
}

func NewHTTPHandler(catalog *service.CatalogService, cart *service.CartService, checkout *service.CheckoutService, adminPIN string, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		adminPIN: adminPIN,
		logger:   logger,
	}
}

// Register wires all routes onto the router. Admin mutations sit behind
// the PIN middleware.
func (h *HTTPHandler) Register(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/products", h.ListProducts)

		cart := api.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.POST("/items", h.AddToCart)
			cart.PATCH("/items/:id", h.UpdateCartItem)
			cart.DELETE("/items/:id", h.RemoveCartItem)
		}

		api.GET("/checkout/preview", h.PreviewCheckout)
		api.POST("/checkout", h.ConfirmCheckout)

		admin := api.Group("/admin")
		{
			admin.POST("/login", h.AdminLogin)

			products := admin.Group("/products", h.requirePIN)
			{
				products.POST("", h.CreateProduct)
				products.PUT("/:id", h.UpdateProduct)
				products.DELETE("/:id", h.DeleteProduct)
			}
		}
	}
}

type productRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    int    `json:"price" binding:"required,gt=0"`
	Category string `json:"category" binding:"omitempty,oneof=Makanan Minuman Rokok Sembako Lainnya"`
	Image    string `json:"image"`
}

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type updateCartItemRequest struct {
	Delta int `json:"delta"`
}

type checkoutRequest struct {
	Cash int `json:"cash" binding:"gte=0"`
}

type pinRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// Catalog, optionally filtered by one category facet.
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	category := c.Query("category")

	var (
		products []domain.Product
		err      error
	)
	if category == "" {
		products, err = h.catalog.List(c.Request.Context())
	} else {
		products, err = h.catalog.ListByCategory(c.Request.Context(), category)
	}
	if err != nil {
		h.logger.Error("catalog load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (h *HTTPHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":      h.cart.Items(),
		"total":      h.cart.Total(),
		"item_count": h.cart.ItemCount(),
	})
}

func (h *HTTPHandler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.logger.Error("catalog load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return
	}

	for _, p := range products {
		if p.ID == req.ProductID {
			h.cart.Add(p)
			c.JSON(http.StatusOK, gin.H{
				"items":      h.cart.Items(),
				"total":      h.cart.Total(),
				"item_count": h.cart.ItemCount(),
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

// Deltas are clamped, never rejected; a stale item id is a silent no-op.
func (h *HTTPHandler) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.cart.UpdateQuantity(c.Param("id"), req.Delta)
	c.JSON(http.StatusOK, gin.H{
		"items":      h.cart.Items(),
		"total":      h.cart.Total(),
		"item_count": h.cart.ItemCount(),
	})
}

func (h *HTTPHandler) RemoveCartItem(c *gin.Context) {
	h.cart.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{
		"items":      h.cart.Items(),
		"total":      h.cart.Total(),
		"item_count": h.cart.ItemCount(),
	})
}

func (h *HTTPHandler) PreviewCheckout(c *gin.Context) {
	cash, _ := strconv.Atoi(c.DefaultQuery("cash", "0"))

	preview := h.checkout.Preview(cash)
	c.JSON(http.StatusOK, gin.H{
		"total":       preview.Total,
		"cash":        preview.Cash,
		"change":      preview.Change,
		"valid":       preview.Valid,
		"suggestions": preview.Suggestions,
	})
}

func (h *HTTPHandler) ConfirmCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, doc, err := h.checkout.Confirm(c.Request.Context(), req.Cash)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}
		if errors.Is(err, service.ErrInsufficientCash) {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient cash"})
			return
		}
		h.logger.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_id": order.ID,
		"total":    order.Total,
		"cash":     order.Cash,
		"change":   order.Change,
		"receipt":  doc.Filename,
	})
}

// AdminLogin verifies the configured PIN. The failure message deliberately
// carries no hint about the expected value.
func (h *HTTPHandler) AdminLogin(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PIN != h.adminPIN {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "PIN salah"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "admin mode enabled"})
}

func (h *HTTPHandler) requirePIN(c *gin.Context) {
	if c.GetHeader("X-Admin-PIN") != h.adminPIN {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "PIN salah"})
		return
	}
	c.Next()
}

func (h *HTTPHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.Create(c.Request.Context(), service.ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (h *HTTPHandler) UpdateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.catalog.Update(c.Request.Context(), c.Param("id"), service.ProductInput{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (h *HTTPHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *HTTPHandler) writeCatalogError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if errors.Is(err, service.ErrInvalidProduct) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("catalog mutation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (h *HTTPHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
