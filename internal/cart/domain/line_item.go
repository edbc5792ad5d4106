package domain

import (
	catalog "github.com/dwikikusuma/shopping-cart/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// LineItem pairs a product with its unit price and quantity inside a cart.
// It performs no validation of its own; Cart checks inputs before building
// or mutating one.
type LineItem struct {
	product   *catalog.Product
	unitPrice decimal.Decimal
	quantity  int
}

func NewLineItem(product *catalog.Product, unitPrice decimal.Decimal, quantity int) *LineItem {
	return &LineItem{
		product:   product,
		unitPrice: unitPrice,
		quantity:  quantity,
	}
}

func (li *LineItem) Product() *catalog.Product {
	return li.product
}

func (li *LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

func (li *LineItem) Quantity() int {
	return li.quantity
}

func (li *LineItem) SetUnitPrice(unitPrice decimal.Decimal) {
	li.unitPrice = unitPrice
}

func (li *LineItem) SetQuantity(quantity int) {
	li.quantity = quantity
}

func (li *LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}
