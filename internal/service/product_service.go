package service

import (
	"context"
	"regexp"
	"strings"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

// decimalPattern matches money amounts kept as strings ("9.99"). Amounts
// are never parsed to floats on the write path so no precision is lost.
var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

func validDecimal(s string) bool {
	return decimalPattern.MatchString(s)
}

type CreateProductInput struct {
	Name              string
	Description       string
	Price             string
	CostPrice         string
	StockQuantity     int
	LowStockThreshold int
	SKU               string
	Category          string
	Images            []string
	IsActive          bool
}

// UpdateProductInput carries a partial update; nil fields are untouched.
type UpdateProductInput struct {
	Name              *string
	Description       *string
	Price             *string
	CostPrice         *string
	StockQuantity     *int
	LowStockThreshold *int
	SKU               *string
	Category          *string
	Images            []string
	IsActive          *bool
}

// ProductService covers inventory management for a single seller.
type ProductService interface {
	Create(ctx context.Context, userID int64, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, userID, id int64, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, userID, id int64) error
	Get(ctx context.Context, userID, id int64) (*domain.Product, error)
	List(ctx context.Context, userID int64, page repository.Page) ([]domain.Product, error)
	AdjustStock(ctx context.Context, userID, id int64, adjustment int) (int, error)
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, userID int64, input CreateProductInput) (*domain.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, apperr.New(apperr.KindBadRequest, "product name is required")
	}
	if !validDecimal(input.Price) {
		return nil, apperr.New(apperr.KindBadRequest, "price must be a decimal string")
	}
	if input.CostPrice != "" && !validDecimal(input.CostPrice) {
		return nil, apperr.New(apperr.KindBadRequest, "cost price must be a decimal string")
	}
	if input.StockQuantity < 0 {
		return nil, apperr.New(apperr.KindBadRequest, "stock quantity must not be negative")
	}
	if input.LowStockThreshold < 0 {
		return nil, apperr.New(apperr.KindBadRequest, "low stock threshold must not be negative")
	}
	if input.LowStockThreshold == 0 {
		input.LowStockThreshold = 5
	}

	product := &domain.Product{
		UserID:            userID,
		Name:              input.Name,
		Description:       input.Description,
		Price:             input.Price,
		CostPrice:         input.CostPrice,
		StockQuantity:     input.StockQuantity,
		LowStockThreshold: input.LowStockThreshold,
		SKU:               input.SKU,
		Category:          input.Category,
		Images:            input.Images,
		IsActive:          input.IsActive,
	}

	if _, err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, userID, id int64, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperr.New(apperr.KindBadRequest, "product name must not be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if !validDecimal(*input.Price) {
			return nil, apperr.New(apperr.KindBadRequest, "price must be a decimal string")
		}
		product.Price = *input.Price
	}
	if input.CostPrice != nil {
		if *input.CostPrice != "" && !validDecimal(*input.CostPrice) {
			return nil, apperr.New(apperr.KindBadRequest, "cost price must be a decimal string")
		}
		product.CostPrice = *input.CostPrice
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, apperr.New(apperr.KindBadRequest, "stock quantity must not be negative")
		}
		product.StockQuantity = *input.StockQuantity
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, apperr.New(apperr.KindBadRequest, "low stock threshold must not be negative")
		}
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, userID, id int64) error {
	return s.products.Delete(ctx, userID, id)
}

func (s *productService) Get(ctx context.Context, userID, id int64) (*domain.Product, error) {
	return s.products.Get(ctx, userID, id)
}

func (s *productService) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Product, error) {
	return s.products.List(ctx, userID, page)
}

// AdjustStock applies a relative adjustment and returns the new quantity.
// Stock floors at zero; it never goes negative.
func (s *productService) AdjustStock(ctx context.Context, userID, id int64, adjustment int) (int, error) {
	product, err := s.products.Get(ctx, userID, id)
	if err != nil {
		return 0, err
	}

	quantity := product.StockQuantity + adjustment
	if quantity < 0 {
		quantity = 0
	}

	if err := s.products.SetStock(ctx, userID, id, quantity); err != nil {
		return 0, err
	}
	return quantity, nil
}
