package domain

import (
	"math"

	catalog "github.com/dwikikusuma/shopping-cart/internal/catalog/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the ordered set of line items held for one customer.
// At most one line item exists per product code, and items keep the order in
// which their product was first added.
//
// Cart is not safe for concurrent use.
type Cart struct {
	id    uuid.UUID
	items []*LineItem
}

func NewCart() *Cart {
	return &Cart{
		id: uuid.New(),
	}
}

func (c *Cart) ID() uuid.UUID {
	return c.id
}

// AddItem puts quantity units of product into the cart. When the product is
// already present its quantity accumulates and the unit price is replaced if
// it differs; the item keeps its position. Invalid input is rejected before
// anything changes.
func (c *Cart) AddItem(product *catalog.Product, unitPrice decimal.Decimal, quantity int) error {
	if product == nil {
		return ErrInvalidProduct
	}
	if unitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	if i := c.indexOf(product); i >= 0 {
		item := c.items[i]
		if quantity > math.MaxInt-item.Quantity() {
			return ErrQuantityOverflow
		}
		item.SetQuantity(item.Quantity() + quantity)
		if !item.UnitPrice().Equal(unitPrice) {
			item.SetUnitPrice(unitPrice)
		}
		return nil
	}

	c.items = append(c.items, NewLineItem(product, unitPrice, quantity))
	return nil
}

// RemoveItem drops the line item for product, reporting whether one existed.
func (c *Cart) RemoveItem(product *catalog.Product) bool {
	if product == nil {
		return false
	}

	i := c.indexOf(product)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

// RemoveItemAt drops the line item at the zero-based position in insertion
// order. Out-of-range positions report false.
func (c *Cart) RemoveItemAt(position int) bool {
	if position < 0 || position >= len(c.items) {
		return false
	}
	c.removeAt(position)
	return true
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	return out
}

func (c *Cart) Find(product *catalog.Product) (LineItem, bool) {
	i := c.indexOf(product)
	if i < 0 {
		return LineItem{}, false
	}
	return *c.items[i], true
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) indexOf(product *catalog.Product) int {
	for i, item := range c.items {
		if item.Product().Equal(product) {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	copy(c.items[i:], c.items[i+1:])
	c.items[len(c.items)-1] = nil
	c.items = c.items[:len(c.items)-1]
}
