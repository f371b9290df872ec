package service

import (
	"context"
	"strings"
	"time"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

type CreateInvoiceInput struct {
	OrderID       int64
	InvoiceNumber string
	Subtotal      string
	Tax           string
	Discount      string
	Total         string
	Notes         string
	DueDate       *time.Time
}

// InvoiceService manages billing documents tied to orders.
type InvoiceService interface {
	Create(ctx context.Context, userID int64, input CreateInvoiceInput) (*domain.Invoice, error)
	UpdateStatus(ctx context.Context, userID, id int64, status domain.InvoiceStatus) error
	Get(ctx context.Context, userID, id int64) (*domain.Invoice, error)
	List(ctx context.Context, userID int64, page repository.Page) ([]domain.Invoice, error)
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
}

func NewInvoiceService(invoices repository.InvoiceRepository, orders repository.OrderRepository) InvoiceService {
	return &invoiceService{invoices: invoices, orders: orders}
}

func (s *invoiceService) Create(ctx context.Context, userID int64, input CreateInvoiceInput) (*domain.Invoice, error) {
	input.InvoiceNumber = strings.TrimSpace(input.InvoiceNumber)
	if input.InvoiceNumber == "" {
		return nil, apperr.New(apperr.KindBadRequest, "invoice number is required")
	}
	if !validDecimal(input.Subtotal) {
		return nil, apperr.New(apperr.KindBadRequest, "subtotal must be a decimal string")
	}
	if !validDecimal(input.Total) {
		return nil, apperr.New(apperr.KindBadRequest, "total must be a decimal string")
	}
	if input.Tax == "" {
		input.Tax = "0"
	} else if !validDecimal(input.Tax) {
		return nil, apperr.New(apperr.KindBadRequest, "tax must be a decimal string")
	}
	if input.Discount == "" {
		input.Discount = "0"
	} else if !validDecimal(input.Discount) {
		return nil, apperr.New(apperr.KindBadRequest, "discount must be a decimal string")
	}

	// The invoice must reference an order owned by the caller.
	if _, err := s.orders.Get(ctx, userID, input.OrderID); err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		UserID:        userID,
		OrderID:       input.OrderID,
		InvoiceNumber: input.InvoiceNumber,
		DueDate:       input.DueDate,
		Subtotal:      input.Subtotal,
		Tax:           input.Tax,
		Discount:      input.Discount,
		Total:         input.Total,
		Notes:         input.Notes,
		Status:        domain.InvoiceStatusDraft,
	}

	if _, err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, userID, id int64, status domain.InvoiceStatus) error {
	if !domain.ValidInvoiceStatus(status) {
		return apperr.New(apperr.KindBadRequest, "unknown invoice status")
	}
	return s.invoices.UpdateStatus(ctx, userID, id, status)
}

func (s *invoiceService) Get(ctx context.Context, userID, id int64) (*domain.Invoice, error) {
	return s.invoices.Get(ctx, userID, id)
}

func (s *invoiceService) List(ctx context.Context, userID int64, page repository.Page) ([]domain.Invoice, error) {
	return s.invoices.List(ctx, userID, page)
}
