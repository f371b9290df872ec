package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

func TestProductRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	products := NewProductRepository(db)
	require.NoError(t, products.Init(ctx))

	p := &domain.Product{
		UserID:            userID,
		Name:              "Ceramic Mug",
		Description:       "Hand glazed",
		Price:             "12.50",
		CostPrice:         "4.00",
		StockQuantity:     20,
		LowStockThreshold: 5,
		SKU:               "MUG-001",
		Category:          "kitchen",
		Images:            []string{"https://cdn.example.com/mug.jpg"},
		IsActive:          true,
	}
	id, err := products.Create(ctx, p)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := products.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Mug", got.Name)
	assert.Equal(t, "12.50", got.Price)
	assert.Equal(t, []string{"https://cdn.example.com/mug.jpg"}, got.Images)
	assert.True(t, got.IsActive)
}

func TestProductRepository_Update(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	products := NewProductRepository(db)
	require.NoError(t, products.Init(ctx))

	p := &domain.Product{UserID: userID, Name: "Mug", Price: "12.50", IsActive: true}
	id, err := products.Create(ctx, p)
	require.NoError(t, err)

	p.Name = "Large Mug"
	p.Price = "14.00"
	require.NoError(t, products.Update(ctx, p))

	got, err := products.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, "Large Mug", got.Name)
	assert.Equal(t, "14.00", got.Price)
	assert.Empty(t, got.Images)
}

func TestProductRepository_SetStockAndDelete(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	products := NewProductRepository(db)
	require.NoError(t, products.Init(ctx))

	p := &domain.Product{UserID: userID, Name: "Mug", Price: "12.50", StockQuantity: 10}
	id, err := products.Create(ctx, p)
	require.NoError(t, err)

	require.NoError(t, products.SetStock(ctx, userID, id, 3))
	got, err := products.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)

	require.NoError(t, products.Delete(ctx, userID, id))
	_, err = products.Get(ctx, userID, id)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	assert.True(t, errors.Is(products.Delete(ctx, userID, id), repository.ErrNotFound))
}

func TestProductRepository_ScopedToUser(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "open-1")
	other := seedUser(t, db, "open-2")
	products := NewProductRepository(db)
	require.NoError(t, products.Init(ctx))

	id, err := products.Create(ctx, &domain.Product{UserID: owner, Name: "Mug", Price: "12.50"})
	require.NoError(t, err)

	_, err = products.Get(ctx, other, id)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	assert.True(t, errors.Is(products.SetStock(ctx, other, id, 1), repository.ErrNotFound))

	list, err := products.List(ctx, other, repository.Page{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductRepository_CountByUser(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	userID := seedUser(t, db, "open-1")
	products := NewProductRepository(db)
	require.NoError(t, products.Init(ctx))

	_, err := products.Create(ctx, &domain.Product{UserID: userID, Name: "A", Price: "1.00", StockQuantity: 2, LowStockThreshold: 5})
	require.NoError(t, err)
	_, err = products.Create(ctx, &domain.Product{UserID: userID, Name: "B", Price: "1.00", StockQuantity: 50, LowStockThreshold: 5})
	require.NoError(t, err)

	total, lowStock, err := products.CountByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, lowStock)
}
