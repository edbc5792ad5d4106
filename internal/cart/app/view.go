package app

import (
	"github.com/dwikikusuma/shopping-cart/internal/cart/domain"
	"github.com/shopspring/decimal"
)

type ItemView struct {
	Code        int64
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}

type CartView struct {
	ID         string
	CustomerID string
	Items      []ItemView
	Total      decimal.Decimal
}

type AddItemInput struct {
	Code        int64
	Description string
	UnitPrice   decimal.Decimal
	Quantity    int
}

type Stats struct {
	ActiveCarts   int
	AverageTicket decimal.Decimal
}

func toView(customerID string, cart *domain.Cart) CartView {
	items := cart.Items()
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, ItemView{
			Code:        it.Product().Code(),
			Description: it.Product().Description(),
			UnitPrice:   it.UnitPrice(),
			Quantity:    it.Quantity(),
			Subtotal:    it.Subtotal(),
		})
	}

	return CartView{
		ID:         cart.ID().String(),
		CustomerID: customerID,
		Items:      out,
		Total:      cart.Total(),
	}
}
