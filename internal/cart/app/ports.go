package app

import (
	"github.com/dwikikusuma/shopping-cart/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type CartStore interface {
	Create(customerID string) *domain.Cart
	Get(customerID string) (*domain.Cart, bool)
	Invalidate(customerID string) bool
	AverageTicket() decimal.Decimal
	Len() int
}
