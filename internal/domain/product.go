package domain

import "time"

// Product represents an inventory item owned by a seller. Monetary fields
// are decimal strings ("9.99") and are stored and returned verbatim.
type Product struct {
	ID                int64
	UserID            int64
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
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
