package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/dwikikusuma/shopping-cart/internal/cart/app"
	"github.com/dwikikusuma/shopping-cart/internal/cart/domain"
	catalog "github.com/dwikikusuma/shopping-cart/internal/catalog/domain"
	"github.com/dwikikusuma/shopping-cart/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type cartTestContext struct {
	registry   *app.Registry
	err        error
	removed    bool
	remembered uuid.UUID
}

func (c *cartTestContext) reset() {
	c.registry = app.NewRegistry()
	c.err = nil
	c.removed = false
	c.remembered = uuid.Nil
}

func (c *cartTestContext) cartOf(customerID string) (*domain.Cart, error) {
	cart, ok := c.registry.Get(customerID)
	if !ok {
		return nil, fmt.Errorf("no active cart for %q", customerID)
	}
	return cart, nil
}

func (c *cartTestContext) anEmptyRegistry() error {
	c.reset()
	return nil
}

func (c *cartTestContext) customerAddsProduct(customerID string, code int64, description, unitPrice string, quantity int) error {
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return err
	}
	cart := c.registry.Create(customerID)
	c.err = cart.AddItem(catalog.NewProduct(code, description), price, quantity)
	return nil
}

func (c *cartTestContext) customerRemovesProduct(customerID string, code int64) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	c.removed = cart.RemoveItem(catalog.NewProduct(code, ""))
	return nil
}

func (c *cartTestContext) customerRemovesPosition(customerID string, position int) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	c.removed = cart.RemoveItemAt(position)
	return nil
}

func (c *cartTestContext) theAddFailsWith(msg string) error {
	if c.err == nil {
		return errors.New("expected add to fail")
	}
	if !strings.Contains(c.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *cartTestContext) theRemovalReturns(want string) error {
	if got := fmt.Sprint(c.removed); got != want {
		return fmt.Errorf("expected removal to return %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) theCartHasLineItems(customerID string, n int) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	if cart.Len() != n {
		return fmt.Errorf("expected %d line items, got %d", n, cart.Len())
	}
	return nil
}

func (c *cartTestContext) lineIsProduct(pos int, customerID string, code int64, quantity int, unitPrice string) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	items := cart.Items()
	if pos < 0 || pos >= len(items) {
		return fmt.Errorf("no line at position %d", pos)
	}

	it := items[pos]
	if it.Product().Code() != code {
		return fmt.Errorf("expected product %d, got %d", code, it.Product().Code())
	}
	if it.Quantity() != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, it.Quantity())
	}
	if !it.UnitPrice().Equal(decimal.RequireFromString(unitPrice)) {
		return fmt.Errorf("expected unit price %s, got %s", unitPrice, it.UnitPrice())
	}
	return nil
}

func (c *cartTestContext) theCartTotalIs(customerID, want string) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	if !cart.Total().Equal(decimal.RequireFromString(want)) {
		return fmt.Errorf("expected total %s, got %s", want, cart.Total())
	}
	return nil
}

func (c *cartTestContext) theCartIsInvalidated(customerID string) error {
	if !c.registry.Invalidate(customerID) {
		return fmt.Errorf("cart of %q was not active", customerID)
	}
	return nil
}

func (c *cartTestContext) theRegistryHoldsCarts(n int) error {
	if c.registry.Len() != n {
		return fmt.Errorf("expected %d carts, got %d", n, c.registry.Len())
	}
	return nil
}

func (c *cartTestContext) theAverageTicketIs(want string) error {
	if got := c.registry.AverageTicket().StringFixed(money.Cents); got != want {
		return fmt.Errorf("expected average ticket %s, got %s", want, got)
	}
	return nil
}

func (c *cartTestContext) iRememberTheCartOf(customerID string) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	c.remembered = cart.ID()
	return nil
}

func (c *cartTestContext) theCartIsNotTheRememberedCart(customerID string) error {
	cart, err := c.cartOf(customerID)
	if err != nil {
		return err
	}
	if cart.ID() == c.remembered {
		return fmt.Errorf("cart of %q was not replaced", customerID)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^an empty registry$`, tc.anEmptyRegistry)

	// When
	ctx.Step(`^customer "([^"]*)" adds product (\d+) "([^"]*)" at "([^"]*)" quantity (-?\d+)$`, tc.customerAddsProduct)
	ctx.Step(`^customer "([^"]*)" removes product (\d+)$`, tc.customerRemovesProduct)
	ctx.Step(`^customer "([^"]*)" removes position (-?\d+)$`, tc.customerRemovesPosition)
	ctx.Step(`^the cart of "([^"]*)" is invalidated$`, tc.theCartIsInvalidated)
	ctx.Step(`^I remember the cart of "([^"]*)"$`, tc.iRememberTheCartOf)

	// Then
	ctx.Step(`^the add fails with "([^"]*)"$`, tc.theAddFailsWith)
	ctx.Step(`^the removal returns (true|false)$`, tc.theRemovalReturns)
	ctx.Step(`^the cart of "([^"]*)" has (\d+) line items?$`, tc.theCartHasLineItems)
	ctx.Step(`^line (\d+) of "([^"]*)" is product (\d+) with quantity (\d+) at "([^"]*)"$`, tc.lineIsProduct)
	ctx.Step(`^the cart total of "([^"]*)" is "([^"]*)"$`, tc.theCartTotalIs)
	ctx.Step(`^the registry holds (\d+) carts?$`, tc.theRegistryHoldsCarts)
	ctx.Step(`^the average ticket is "([^"]*)"$`, tc.theAverageTicketIs)
	ctx.Step(`^the cart of "([^"]*)" is not the remembered cart$`, tc.theCartIsNotTheRememberedCart)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
