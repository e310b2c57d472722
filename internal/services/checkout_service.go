package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"furniro/internal/models"

	"github.com/google/uuid"
)

// Payment methods offered at checkout.
const (
	MethodBankTransfer    = "direct-bank-transfer"
	MethodBankTransferAlt = "direct-bank-transfer-2"
	MethodCard            = "stripe"
	MethodCashOnDelivery  = "cash-on-delivery"
)

// Remote payment-intent states.
const (
	IntentStateNone    = "none"
	IntentStateLoading = "loading"
	IntentStateReady   = "ready"
	IntentStateFailed  = "failed"
)

var (
	// ErrEmptyCart rejects order placement with nothing to buy.
	ErrEmptyCart = errors.New("your cart is empty")
	// ErrBillingRequired rejects order placement before any billing details
	// were entered.
	ErrBillingRequired = errors.New("billing details are required")
	// ErrBillingInvalid rejects order placement over a billing record that
	// failed validation; the field→message map names the offending fields.
	ErrBillingInvalid = errors.New("billing details failed validation")
	// ErrUnknownMethod rejects a payment method outside the offered set.
	ErrUnknownMethod = errors.New("unknown payment method")
	// ErrAwaitingCardPayment means the order is valid but finalization waits
	// for the embedded payment widget to confirm the charge.
	ErrAwaitingCardPayment = errors.New("awaiting card payment confirmation")
)

func validMethod(method string) bool {
	switch method {
	case MethodBankTransfer, MethodBankTransferAlt, MethodCard, MethodCashOnDelivery:
		return true
	}
	return false
}

// checkoutState is one identity's in-progress checkout.
type checkoutState struct {
	method      string
	billing     *models.BillingDetails
	intentState string
	secret      string
	intentErr   string
	// seq bumps on every edit and intent request. A response whose sequence
	// no longer matches was superseded and discards itself; there is no
	// explicit in-flight cancellation.
	seq uint64
}

func newCheckoutState() *checkoutState {
	return &checkoutState{
		method:      MethodBankTransfer,
		intentState: IntentStateNone,
	}
}

func (st *checkoutState) resetIntent() {
	st.seq++
	st.intentState = IntentStateNone
	st.secret = ""
	st.intentErr = ""
}

// CheckoutStatus is a snapshot of an identity's checkout, safe to hand to
// handlers.
type CheckoutStatus struct {
	Method       string `json:"method"`
	IntentState  string `json:"intent_state"`
	ClientSecret string `json:"client_secret,omitempty"`
	IntentError  string `json:"intent_error,omitempty"`
	HasBilling   bool   `json:"has_billing"`
}

// CheckoutService coordinates billing details, cart totals, and the remote
// payment-intent request, and finalizes orders. All transitions for one
// identity serialize through the service mutex.
type CheckoutService struct {
	mu       sync.Mutex
	sessions map[string]*checkoutState

	cart    *CartService
	orders  *OrderHistoryService
	payment *PaymentService
	events  EventPublisher
}

// NewCheckoutService creates a new CheckoutService. It subscribes to cart
// mutations: an intent is keyed to the cart total, so any cart change
// invalidates the obtained client secret.
func NewCheckoutService(cart *CartService, orders *OrderHistoryService, payment *PaymentService, events EventPublisher) *CheckoutService {
	s := &CheckoutService{
		sessions: make(map[string]*checkoutState),
		cart:     cart,
		orders:   orders,
		payment:  payment,
		events:   events,
	}
	cart.AddListener(s.cartChanged)
	return s
}

// cartChanged reacts to a cart mutation: the intent no longer matches the
// total, so it is discarded and, with card selected, requested afresh.
func (s *CheckoutService) cartChanged(identityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[identityID]
	if !ok {
		return
	}
	st.resetIntent()
	if st.method == MethodCard {
		s.maybeRequestIntent(identityID, st)
	}
}

// session returns the identity's checkout state, creating it on first use.
// Callers must hold s.mu.
func (s *CheckoutService) session(identityID string) *checkoutState {
	st, ok := s.sessions[identityID]
	if !ok {
		st = newCheckoutState()
		s.sessions[identityID] = st
	}
	return st
}

// SelectMethod switches the payment method. Moving away from card discards
// any obtained client secret; moving onto card requests a payment intent when
// the cart and billing email allow it.
func (s *CheckoutService) SelectMethod(identityID, method string) (CheckoutStatus, error) {
	if !validMethod(method) {
		return CheckoutStatus{}, ErrUnknownMethod
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.session(identityID)
	st.method = method
	st.resetIntent()
	if method == MethodCard {
		s.maybeRequestIntent(identityID, st)
	}
	return s.status(st), nil
}

// UpdateBilling replaces the identity's billing record. Billing edits
// invalidate any previously obtained client secret; with card selected a
// fresh intent is requested if the inputs still qualify.
func (s *CheckoutService) UpdateBilling(identityID string, billing models.BillingDetails) CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.session(identityID)
	snapshot := billing
	st.billing = &snapshot
	st.resetIntent()
	if st.method == MethodCard {
		s.maybeRequestIntent(identityID, st)
	}
	return s.status(st)
}

// Status returns a snapshot of the identity's checkout.
func (s *CheckoutService) Status(identityID string) CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status(s.session(identityID))
}

func (s *CheckoutService) status(st *checkoutState) CheckoutStatus {
	return CheckoutStatus{
		Method:       st.method,
		IntentState:  st.intentState,
		ClientSecret: st.secret,
		IntentError:  st.intentErr,
		HasBilling:   st.billing != nil,
	}
}

// maybeRequestIntent starts an asynchronous payment-intent request when the
// preconditions hold: card method, a non-empty cart, and a present billing
// email. Callers must hold s.mu.
func (s *CheckoutService) maybeRequestIntent(identityID string, st *checkoutState) {
	if st.method != MethodCard {
		return
	}
	if st.billing == nil || strings.TrimSpace(st.billing.Email) == "" {
		return
	}
	total := s.cart.TotalPrice(identityID)
	if total <= 0 {
		return
	}

	st.seq++
	seq := st.seq
	st.intentState = IntentStateLoading
	st.secret = ""
	st.intentErr = ""

	metadata := s.intentMetadata(identityID, st.billing.Email)
	go func() {
		secret, err := s.payment.CreateIntent(total, "", metadata)

		s.mu.Lock()
		defer s.mu.Unlock()
		cur, ok := s.sessions[identityID]
		if !ok || cur.seq != seq {
			// Superseded by a later request or an edit; latest wins.
			return
		}
		if err != nil {
			log.Printf("Payment intent request failed for %s: %v", identityID, err)
			cur.intentState = IntentStateFailed
			cur.intentErr = err.Error()
			return
		}
		cur.intentState = IntentStateReady
		cur.secret = secret
	}()
}

// intentMetadata serializes the cart lines and customer email for the
// provider, plus the identity key so the webhook can locate the order.
func (s *CheckoutService) intentMetadata(identityID, email string) map[string]string {
	items := make([]models.OrderItem, 0)
	for _, line := range s.cart.Lines(identityID) {
		items = append(items, models.OrderItem{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		log.Printf("Error encoding intent metadata items: %v", err)
		encoded = []byte("[]")
	}
	return map[string]string{
		"items":          string(encoded),
		"customer_email": email,
		"identity":       identityID,
	}
}

// PlaceOrder runs the place-order transition. Card orders are not finalized
// here: a valid card checkout returns ErrAwaitingCardPayment and waits for
// ConfirmCardPayment.
func (s *CheckoutService) PlaceOrder(identityID string) (*models.Order, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.session(identityID)
	if fieldErrors, err := s.checkOrder(identityID, st); err != nil {
		return nil, fieldErrors, err
	}
	if st.method == MethodCard {
		return nil, nil, ErrAwaitingCardPayment
	}
	order := s.finalize(identityID, st, "")
	return order, nil, nil
}

// ConfirmCardPayment finalizes a card order after the embedded payment widget
// reports success. The order is recorded as pending and flips to paid when
// the provider's webhook confirms the charge.
func (s *CheckoutService) ConfirmCardPayment(identityID, paymentIntentID string) (*models.Order, map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.session(identityID)
	if fieldErrors, err := s.checkOrder(identityID, st); err != nil {
		return nil, fieldErrors, err
	}
	order := s.finalize(identityID, st, paymentIntentID)
	return order, nil, nil
}

// checkOrder applies the place-order guards: non-empty cart, billing present,
// billing valid. Callers must hold s.mu.
func (s *CheckoutService) checkOrder(identityID string, st *checkoutState) (map[string]string, error) {
	if len(s.cart.Lines(identityID)) == 0 {
		return nil, ErrEmptyCart
	}
	if st.billing == nil {
		return nil, ErrBillingRequired
	}
	if ok, fieldErrors := ValidateBilling(*st.billing); !ok {
		return fieldErrors, ErrBillingInvalid
	}
	return nil, nil
}

// finalize appends the order, clears the cart, publishes order.created, and
// resets the checkout session. Callers must hold s.mu.
func (s *CheckoutService) finalize(identityID string, st *checkoutState, paymentIntentID string) *models.Order {
	lines := s.cart.Lines(identityID)
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
	}

	order := models.Order{
		ID:              uuid.New().String(),
		Billing:         *st.billing,
		PaymentMethod:   st.method,
		Items:           items,
		Total:           s.cart.TotalPrice(identityID),
		Status:          models.OrderStatusPending,
		PaymentIntentID: paymentIntentID,
		CreatedAt:       time.Now(),
	}

	s.orders.Append(identityID, order)
	s.cart.clearQuiet(identityID)
	st.resetIntent()

	if s.events != nil {
		err := s.events.PublishEvent("order.created", map[string]interface{}{
			"order_id": order.ID,
			"identity": identityID,
			"method":   order.PaymentMethod,
			"total":    order.Total,
			"status":   order.Status,
		})
		if err != nil {
			log.Printf("Warning: failed to publish order.created for order %s: %v", order.ID, err)
		}
	}

	return &order
}

// HandlePaymentSucceeded processes the provider's confirmation of a card
// charge: the pending order holding the intent becomes paid.
func (s *CheckoutService) HandlePaymentSucceeded(identityID, paymentIntentID string) error {
	if err := s.orders.MarkPaid(identityID, paymentIntentID); err != nil {
		return err
	}
	if s.events != nil {
		err := s.events.PublishEvent("order.paid", map[string]interface{}{
			"identity":          identityID,
			"payment_intent_id": paymentIntentID,
		})
		if err != nil {
			log.Printf("Warning: failed to publish order.paid for intent %s: %v", paymentIntentID, err)
		}
	}
	return nil
}
