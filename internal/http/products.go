package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/service"
)

type ProductResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             string   `json:"price"`
	CostPrice         string   `json:"costPrice"`
	StockQuantity     int      `json:"stockQuantity"`
	LowStockThreshold int      `json:"lowStockThreshold"`
	SKU               string   `json:"sku"`
	Category          string   `json:"category"`
	Images            []string `json:"images"`
	IsActive          bool     `json:"isActive"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

func productToResponse(p domain.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		SKU:               p.SKU,
		Category:          p.Category,
		Images:            images,
		IsActive:          p.IsActive,
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func (h *Handler) listProducts(c *gin.Context) {
	user := userFrom(c)
	products, err := h.products.List(c.Request.Context(), user.ID, pageFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(products[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), userFrom(c).ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, productToResponse(*product))
}

type createProductRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	Price             string   `json:"price" binding:"required"`
	CostPrice         string   `json:"costPrice"`
	StockQuantity     int      `json:"stockQuantity"`
	LowStockThreshold int      `json:"lowStockThreshold"`
	SKU               string   `json:"sku"`
	Category          string   `json:"category"`
	Images            []string `json:"images"`
	IsActive          *bool    `json:"isActive"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product, err := h.products.Create(c.Request.Context(), userFrom(c).ID, service.CreateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		CostPrice:         req.CostPrice,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		Category:          req.Category,
		Images:            req.Images,
		IsActive:          isActive,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productToResponse(*product))
}

type updateProductRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *string  `json:"price"`
	CostPrice         *string  `json:"costPrice"`
	StockQuantity     *int     `json:"stockQuantity"`
	LowStockThreshold *int     `json:"lowStockThreshold"`
	SKU               *string  `json:"sku"`
	Category          *string  `json:"category"`
	Images            []string `json:"images"`
	IsActive          *bool    `json:"isActive"`
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	product, err := h.products.Update(c.Request.Context(), userFrom(c).ID, id, service.UpdateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		CostPrice:         req.CostPrice,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		SKU:               req.SKU,
		Category:          req.Category,
		Images:            req.Images,
		IsActive:          req.IsActive,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, productToResponse(*product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), userFrom(c).ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type adjustStockRequest struct {
	Adjustment int `json:"adjustment" binding:"required"`
}

func (h *Handler) adjustStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	quantity, err := h.products.AdjustStock(c.Request.Context(), userFrom(c).ID, id, req.Adjustment)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "newQuantity": quantity})
}
