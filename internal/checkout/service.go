package checkout

import (
	"context"
	stdErrors "errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/sbaral/bookpasal-backend/internal/cart"
	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
	"github.com/sbaral/bookpasal-backend/pkg/types"
)

// OrderCreator persists a submitted order.
type OrderCreator interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// OrderNotifier dispatches the order-created emails.
type OrderNotifier interface {
	OnOrderCreated(ctx context.Context, order *models.Order) error
}

// Service orchestrates submission: validate, snapshot, persist, notify,
// clear. The cart is only cleared after the order has been committed.
type Service struct {
	carts    *cart.Store
	orders   OrderCreator
	notifier OrderNotifier
	shipping ShippingPolicy
	currency enums.Currency
	logger   *logger.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewService wires the checkout orchestrator.
func NewService(carts *cart.Store, orders OrderCreator, notifier OrderNotifier, shipping ShippingPolicy, currency enums.Currency, logg *logger.Logger) (*Service, error) {
	if carts == nil {
		return nil, stdErrors.New("checkout: cart store is required")
	}
	if orders == nil {
		return nil, stdErrors.New("checkout: order creator is required")
	}
	if notifier == nil {
		return nil, stdErrors.New("checkout: notifier is required")
	}
	if shipping == nil {
		return nil, stdErrors.New("checkout: shipping policy is required")
	}
	if currency == "" {
		currency = enums.CurrencyNPR
	}
	return &Service{
		carts:    carts,
		orders:   orders,
		notifier: notifier,
		shipping: shipping,
		currency: currency,
		logger:   logg,
		inflight: make(map[string]struct{}),
	}, nil
}

// Submit runs the whole checkout for one session. A second submit for the
// same session while one is in flight is rejected, so double-clicks cannot
// create two orders from one cart.
func (s *Service) Submit(ctx context.Context, sessionID string, fields Fields) (*models.Order, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeValidation, "session id is required")
	}
	if !s.begin(sessionID) {
		return nil, errors.New(errors.CodeConflict, "a checkout for this session is already in progress")
	}
	defer s.finish(sessionID)

	state, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.IsEmpty() {
		return nil, errors.New(errors.CodeConflict, "cart is empty")
	}

	shippingRequired := state.RequiresShipping()
	if failures := ValidateFields(fields, shippingRequired); len(failures) > 0 {
		return nil, errors.New(errors.CodeValidation, "checkout fields incomplete").WithDetails(failures)
	}

	totals := ComputeTotals(state, shippingRequired, s.shipping)
	order := s.buildOrder(state, fields, totals, shippingRequired)

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		// Cart stays intact so the buyer can retry.
		return nil, err
	}

	// Both emails are attempted before we report success, but delivery
	// problems never undo a committed order.
	if notifyErr := s.notifier.OnOrderCreated(ctx, created); notifyErr != nil && s.logger != nil {
		s.logger.Error(s.logger.WithOrderNumber(ctx, created.OrderNumber), "order notifications incomplete", notifyErr)
	}

	if _, clearErr := s.carts.Dispatch(ctx, sessionID, cart.Clear{}); clearErr != nil && s.logger != nil {
		s.logger.Warn(s.logger.WithSessionID(ctx, sessionID), "clearing cart after checkout failed")
	}

	return created, nil
}

func (s *Service) buildOrder(state cart.State, fields Fields, totals Totals, shippingRequired bool) *models.Order {
	items := make([]models.OrderItem, 0, len(state.Items))
	for _, line := range state.Items {
		var cover *string
		if line.CoverImage != "" {
			c := line.CoverImage
			cover = &c
		}
		items = append(items, models.OrderItem{
			BookID:     line.BookID,
			Format:     line.Format,
			Title:      line.Title,
			Author:     line.Author,
			CoverImage: cover,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			LineTotal:  line.LineTotal(),
		})
	}

	var address *types.Address
	if shippingRequired {
		address = &types.Address{
			Province: fields.Province,
			District: fields.District,
			Street:   fields.Street,
		}
	}

	return &models.Order{
		OrderNumber:      NewOrderNumber(),
		Email:            fields.Email,
		FirstName:        fields.FirstName,
		LastName:         fields.LastName,
		Phone:            fields.Phone,
		ShippingAddress:  address,
		RequiresShipping: shippingRequired,
		PaymentMethod:    fields.PaymentMethod,
		TransactionRef:   fields.TransactionID,
		Currency:         s.currency,
		Subtotal:         totals.Subtotal,
		ShippingCost:     totals.ShippingCost,
		GrandTotal:       totals.GrandTotal,
		Status:           enums.OrderStatusPending,
		Items:            items,
	}
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) finish(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

func (s *Service) isInflight(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.inflight[sessionID]
	return busy
}

// ConfirmationParams builds the query parameters for the confirmation
// redirect. Amounts are fixed to two decimals so the values survive an
// URL-encoding round trip unchanged.
func ConfirmationParams(order *models.Order) url.Values {
	params := url.Values{}
	params.Set("order", order.OrderNumber)
	params.Set("amount", order.GrandTotal.StringFixed(2))
	params.Set("currency", string(order.Currency))
	params.Set("shipping", strconv.FormatBool(order.RequiresShipping))
	params.Set("shipping_cost", order.ShippingCost.StringFixed(2))
	return params
}
