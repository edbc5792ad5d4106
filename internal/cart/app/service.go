package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	catalog "github.com/dwikikusuma/shopping-cart/internal/catalog/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCartNotFound = errors.New("cart not found")
	ErrEmptyCart    = errors.New("cart is empty")
)

const tracerName = "github.com/dwikikusuma/shopping-cart/internal/cart/app"

// Service serialises access to a CartStore so it can be shared by concurrent
// request handlers, and tracks when each customer last touched their cart so
// idle sessions can be expired.
type Service struct {
	mu    sync.Mutex
	store CartStore

	sessionTTL time.Duration
	lastSeen   map[string]time.Time
	now        func() time.Time

	log    *slog.Logger
	tracer trace.Tracer
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithSessionTTL sets how long a cart may sit idle before SweepExpired
// invalidates it. Zero disables expiry.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.sessionTTL = ttl
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(store CartStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
		log:      slog.Default(),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetOrCreate(ctx context.Context, customerID string) (CartView, error) {
	_, span := s.start(ctx, "cart.GetOrCreate", customerID)
	defer span.End()

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return CartView{}, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.store.Create(customerID)
	s.touch(customerID)
	return toView(customerID, cart), nil
}

func (s *Service) GetCart(ctx context.Context, customerID string) (CartView, error) {
	_, span := s.start(ctx, "cart.GetCart", customerID)
	defer span.End()

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return CartView{}, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.store.Get(customerID)
	if !ok {
		return CartView{}, fail(span, ErrCartNotFound)
	}
	s.touch(customerID)
	return toView(customerID, cart), nil
}

// AddItem adds to the customer's cart, creating the cart first if needed.
func (s *Service) AddItem(ctx context.Context, customerID string, in AddItemInput) (CartView, error) {
	ctx, span := s.start(ctx, "cart.AddItem", customerID)
	defer span.End()
	span.SetAttributes(
		attribute.Int64("product.code", in.Code),
		attribute.Int("item.quantity", in.Quantity),
		attribute.String("item.unit_price", in.UnitPrice.String()),
	)

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return CartView{}, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, existed := s.store.Get(customerID)
	if !existed {
		cart = s.store.Create(customerID)
	}
	product := catalog.NewProduct(in.Code, in.Description)
	if err := cart.AddItem(product, in.UnitPrice, in.Quantity); err != nil {
		if !existed {
			s.store.Invalidate(customerID)
		}
		s.log.WarnContext(ctx, "add item rejected",
			slog.String("customer_id", customerID),
			slog.Int64("code", in.Code),
			slog.Any("err", err),
		)
		return CartView{}, fail(span, fmt.Errorf("add item: %w", err))
	}
	s.touch(customerID)

	s.log.DebugContext(ctx, "item added",
		slog.String("customer_id", customerID),
		slog.Int64("code", in.Code),
		slog.Int("quantity", in.Quantity),
	)
	return toView(customerID, cart), nil
}

// RemoveItem drops the item with the given product code. The boolean reports
// whether the cart held such an item.
func (s *Service) RemoveItem(ctx context.Context, customerID string, code int64) (CartView, bool, error) {
	_, span := s.start(ctx, "cart.RemoveItem", customerID)
	defer span.End()
	span.SetAttributes(attribute.Int64("product.code", code))

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return CartView{}, false, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.store.Get(customerID)
	if !ok {
		return CartView{}, false, fail(span, ErrCartNotFound)
	}
	removed := cart.RemoveItem(catalog.NewProduct(code, ""))
	s.touch(customerID)
	span.SetAttributes(attribute.Bool("item.removed", removed))
	return toView(customerID, cart), removed, nil
}

// RemoveItemAt drops the item at a zero-based position in insertion order.
func (s *Service) RemoveItemAt(ctx context.Context, customerID string, position int) (CartView, bool, error) {
	_, span := s.start(ctx, "cart.RemoveItemAt", customerID)
	defer span.End()
	span.SetAttributes(attribute.Int("item.position", position))

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return CartView{}, false, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.store.Get(customerID)
	if !ok {
		return CartView{}, false, fail(span, ErrCartNotFound)
	}
	removed := cart.RemoveItemAt(position)
	s.touch(customerID)
	span.SetAttributes(attribute.Bool("item.removed", removed))
	return toView(customerID, cart), removed, nil
}

func (s *Service) Invalidate(ctx context.Context, customerID string) (bool, error) {
	ctx, span := s.start(ctx, "cart.Invalidate", customerID)
	defer span.End()

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return false, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.invalidateLocked(customerID)
	if ok {
		s.log.InfoContext(ctx, "cart invalidated", slog.String("customer_id", customerID))
	}
	return ok, nil
}

// Checkout returns the final state of the customer's cart and invalidates it.
func (s *Service) Checkout(ctx context.Context, customerID string) (CartView, error) {
	ctx, span := s.start(ctx, "cart.Checkout", customerID)
	defer span.End()

	customerID, err := normalizeCustomerID(customerID)
	if err != nil {
		return CartView{}, fail(span, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.store.Get(customerID)
	if !ok {
		return CartView{}, fail(span, ErrCartNotFound)
	}
	if cart.Len() == 0 {
		return CartView{}, fail(span, ErrEmptyCart)
	}

	view := toView(customerID, cart)
	s.invalidateLocked(customerID)

	s.log.InfoContext(ctx, "cart checked out",
		slog.String("customer_id", customerID),
		slog.String("cart_id", view.ID),
		slog.String("total", view.Total.String()),
	)
	return view, nil
}

func (s *Service) AverageTicket(ctx context.Context) (decimal.Decimal, error) {
	_, span := s.tracer.Start(ctx, "cart.AverageTicket")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.AverageTicket(), nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	_, span := s.tracer.Start(ctx, "cart.Stats")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		ActiveCarts:   s.store.Len(),
		AverageTicket: s.store.AverageTicket(),
	}, nil
}

func (s *Service) start(ctx context.Context, name, customerID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("customer.id", customerID)))
}

func (s *Service) touch(customerID string) {
	s.lastSeen[customerID] = s.now()
}

func (s *Service) invalidateLocked(customerID string) bool {
	delete(s.lastSeen, customerID)
	return s.store.Invalidate(customerID)
}

func normalizeCustomerID(customerID string) (string, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return "", fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	return customerID, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	return err
}
