package app

import (
	"sort"

	"github.com/dwikikusuma/shopping-cart/internal/cart/domain"
	"github.com/dwikikusuma/shopping-cart/pkg/money"
	"github.com/shopspring/decimal"
)

// Registry holds the active cart of every customer, one cart per customer id.
// Carts stay registered until Invalidate is called; expiring idle sessions is
// left to the owner of the registry.
//
// Registry is not safe for concurrent use. Service adds the locking.
type Registry struct {
	carts map[string]*domain.Cart
}

func NewRegistry() *Registry {
	return &Registry{
		carts: make(map[string]*domain.Cart),
	}
}

// Create returns the cart registered for customerID, creating an empty one
// when the customer has none.
func (r *Registry) Create(customerID string) *domain.Cart {
	if cart, ok := r.carts[customerID]; ok {
		return cart
	}

	cart := domain.NewCart()
	r.carts[customerID] = cart
	return cart
}

func (r *Registry) Get(customerID string) (*domain.Cart, bool) {
	cart, ok := r.carts[customerID]
	return cart, ok
}

// Invalidate removes the customer's cart and reports whether there was one.
func (r *Registry) Invalidate(customerID string) bool {
	if _, ok := r.carts[customerID]; !ok {
		return false
	}
	delete(r.carts, customerID)
	return true
}

// AverageTicket is the mean cart total across all registered carts, rounded
// to cents with ties going down. A zero grand total yields zero.
func (r *Registry) AverageTicket() decimal.Decimal {
	sum := decimal.Zero
	for _, cart := range r.carts {
		sum = sum.Add(cart.Total())
	}
	if sum.IsZero() {
		return decimal.Zero
	}

	return money.Average(sum, int64(len(r.carts)), money.Cents)
}

func (r *Registry) Len() int {
	return len(r.carts)
}

func (r *Registry) CustomerIDs() []string {
	ids := make([]string, 0, len(r.carts))
	for id := range r.carts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
