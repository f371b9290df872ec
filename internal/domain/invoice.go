package domain

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusViewed  InvoiceStatus = "viewed"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
)

func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusViewed,
		InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice is a billing document generated for an order. Amount fields are
// decimal strings, same convention as Product.Price.
type Invoice struct {
	ID            int64
	UserID        int64
	OrderID       int64
	InvoiceNumber string
	InvoiceDate   time.Time
	DueDate       *time.Time
	Subtotal      string
	Tax           string
	Discount      string
	Total         string
	Notes         string
	Status        InvoiceStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
