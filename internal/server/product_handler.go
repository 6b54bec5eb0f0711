package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"productadmin/internal/domain"
)

type ProductHandler struct {
	products   ProductStore
	categories CategoryStore
	log        *logrus.Logger
}

func NewProductHandler(products ProductStore, categories CategoryStore, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		products:   products,
		categories: categories,
		log:        logger,
	}
}

func (h *ProductHandler) RegisterRoutes(authed gin.IRouter) {
	products := authed.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
	authed.GET("/categories", h.ListCategories)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts()
	if err != nil {
		h.log.Errorf("Handler: Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	product, err := h.products.GetProduct(id)
	if err != nil {
		h.respondStoreError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Handler: Failed to bind product body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if msg := checkProduct(product); msg != "" {
		h.log.Warnf("Handler: Rejecting product create: %s", msg)
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}
	if product.CreatedByID == 0 {
		if userID, exists := c.Get(userIDContextKey); exists {
			product.CreatedByID = userID.(int)
		}
	}

	created, err := h.products.CreateProduct(product)
	if err != nil {
		h.log.Errorf("Handler: Failed to create product '%s': %v", product.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	h.log.Infof("Handler: Product created: ID %d, Name '%s'", created.ID, created.Name)
	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Handler: Failed to bind product body for update: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if msg := checkProduct(product); msg != "" {
		h.log.Warnf("Handler: Rejecting product update for ID %d: %s", id, msg)
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	updated, err := h.products.UpdateProduct(id, product)
	if err != nil {
		h.respondStoreError(c, id, err)
		return
	}
	h.log.Infof("Handler: Product updated: ID %d", id)
	c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(id); err != nil {
		h.respondStoreError(c, id, err)
		return
	}
	h.log.Infof("Handler: Product deleted: ID %d", id)
	c.Status(http.StatusNoContent)
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListCategories()
	if err != nil {
		h.log.Errorf("Handler: Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) productID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Handler: Invalid product ID parameter: %s", idStr)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID format"})
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) respondStoreError(c *gin.Context, id int, err error) {
	if errors.Is(err, ErrProductNotFound) {
		h.log.Warnf("Handler: Product %d not found", id)
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	h.log.Errorf("Handler: Store error for product %d: %v", id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// checkProduct mirrors the entity constraints the production backend
// enforces. The client validates first; this is the server's own line of
// defense against other callers.
func checkProduct(product domain.Product) string {
	if product.Name == "" {
		return "Product name is required"
	}
	if len([]rune(product.Name)) < 3 || len([]rune(product.Name)) > 100 {
		return "Product name must be between 3 and 100 characters"
	}
	if product.Price <= 0 {
		return "Price must be greater than 0"
	}
	if product.Price > 999999999 {
		return "Price must not exceed 999,999,999"
	}
	if product.Quantity < 0 {
		return "Quantity cannot be negative"
	}
	if product.Quantity > 99999 {
		return "Quantity must not exceed 99,999"
	}
	if len([]rune(product.Description)) > 500 {
		return "Description must not exceed 500 characters"
	}
	return ""
}
