package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Product is a catalog entry. Stock is the only field that changes after seeding.
type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Image string
	Stock int
}

// InsufficientStockError reports a reservation larger than the stock on hand.
type InsufficientStockError struct {
	ProductID int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %d: insufficient stock (available %d)", e.ProductID, e.Available)
}
