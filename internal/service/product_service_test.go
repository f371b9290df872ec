package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

type fakeProductRepo struct {
	byID   map[int64]*domain.Product
	nextID int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[int64]*domain.Product), nextID: 1}
}

func (r *fakeProductRepo) Init(context.Context) error { return nil }

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) (int64, error) {
	p.ID = r.nextID
	r.nextID++
	clone := *p
	r.byID[p.ID] = &clone
	return p.ID, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) SetStock(_ context.Context, userID, id int64, quantity int) error {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, userID, id int64) error {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) Get(_ context.Context, userID, id int64) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProductRepo) List(_ context.Context, userID int64, _ repository.Page) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.byID {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) CountByUser(_ context.Context, userID int64) (int, int, error) {
	total, lowStock := 0, 0
	for _, p := range r.byID {
		if p.UserID != userID {
			continue
		}
		total++
		if p.StockQuantity <= p.LowStockThreshold {
			lowStock++
		}
	}
	return total, lowStock, nil
}

func assertKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, kind, appErr.Kind)
}

func TestProductService_CreateValidation(t *testing.T) {
	t.Parallel()

	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateProductInput{Name: "  ", Price: "9.99"})
	assertKind(t, err, apperr.KindBadRequest)

	_, err = svc.Create(ctx, 1, CreateProductInput{Name: "Mug", Price: "9.999"})
	assertKind(t, err, apperr.KindBadRequest)

	_, err = svc.Create(ctx, 1, CreateProductInput{Name: "Mug", Price: "-1.00"})
	assertKind(t, err, apperr.KindBadRequest)

	_, err = svc.Create(ctx, 1, CreateProductInput{Name: "Mug", Price: "9.99", StockQuantity: -1})
	assertKind(t, err, apperr.KindBadRequest)
}

func TestProductService_CreateDefaultsThreshold(t *testing.T) {
	t.Parallel()

	svc := NewProductService(newFakeProductRepo())

	p, err := svc.Create(context.Background(), 1, CreateProductInput{Name: "Mug", Price: "9.99"})
	require.NoError(t, err)
	assert.Equal(t, 5, p.LowStockThreshold)
}

func TestProductService_UpdatePartial(t *testing.T) {
	t.Parallel()

	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateProductInput{Name: "Mug", Description: "Blue", Price: "9.99"})
	require.NoError(t, err)

	newPrice := "11.00"
	updated, err := svc.Update(ctx, 1, created.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "11.00", updated.Price)
	assert.Equal(t, "Mug", updated.Name)
	assert.Equal(t, "Blue", updated.Description)

	bad := "abc"
	_, err = svc.Update(ctx, 1, created.ID, UpdateProductInput{Price: &bad})
	assertKind(t, err, apperr.KindBadRequest)
}

func TestProductService_AdjustStockFloorsAtZero(t *testing.T) {
	t.Parallel()

	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, 1, CreateProductInput{Name: "Mug", Price: "9.99", StockQuantity: 3})
	require.NoError(t, err)

	quantity, err := svc.AdjustStock(ctx, 1, p.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, quantity)

	quantity, err = svc.AdjustStock(ctx, 1, p.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, quantity)
}

func TestProductService_AdjustStockMissingProduct(t *testing.T) {
	t.Parallel()

	svc := NewProductService(newFakeProductRepo())

	_, err := svc.AdjustStock(context.Background(), 1, 42, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
