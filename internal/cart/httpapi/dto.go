package httpapi

import (
	"github.com/dwikikusuma/shopping-cart/internal/cart/app"
	"github.com/dwikikusuma/shopping-cart/pkg/money"
	"github.com/shopspring/decimal"
)

type addItemRequest struct {
	Code        *int64           `json:"code"`
	Description string           `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	Quantity    int              `json:"quantity"`
}

type itemResponse struct {
	Code        int64  `json:"code"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type cartResponse struct {
	ID         string         `json:"id"`
	CustomerID string         `json:"customer_id"`
	Items      []itemResponse `json:"items"`
	Total      string         `json:"total"`
}

type removeResponse struct {
	Removed bool         `json:"removed"`
	Cart    cartResponse `json:"cart"`
}

type invalidateResponse struct {
	Invalidated bool `json:"invalidated"`
}

type statsResponse struct {
	ActiveCarts   int    `json:"active_carts"`
	AverageTicket string `json:"average_ticket"`
}

func toResponse(cart app.CartView) cartResponse {
	items := make([]itemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, itemResponse{
			Code:        it.Code,
			Description: it.Description,
			UnitPrice:   it.UnitPrice.String(),
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal.String(),
		})
	}

	return cartResponse{
		ID:         cart.ID,
		CustomerID: cart.CustomerID,
		Items:      items,
		Total:      cart.Total.String(),
	}
}

func toStatsResponse(stats app.Stats) statsResponse {
	return statsResponse{
		ActiveCarts:   stats.ActiveCarts,
		AverageTicket: stats.AverageTicket.StringFixed(money.Cents),
	}
}
