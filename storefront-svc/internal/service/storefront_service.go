package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/payment"
	"bistro-storefront/storefront-svc/internal/pricing"
	"bistro-storefront/storefront-svc/internal/session"
	"bistro-storefront/storefront-svc/internal/storage"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart            = errors.New("your cart is empty")
	ErrUnknownItem          = errors.New("item is not on the menu")
	ErrInvalidMode          = errors.New("fulfillment mode must be pickup or delivery")
	ErrInvalidPayment       = errors.New("payment method must be cod or banking")
	ErrAddressRequired      = errors.New("please enter a delivery address")
	ErrDeliveryPhone        = errors.New("please enter a phone number for delivery")
	ErrInvalidTransferInput = errors.New("amount must be positive and an order id or phone is required")
)

type StorefrontService struct {
	backend    Backend
	cache      CatalogCache
	sessions   SessionStore
	publisher  EventPublisher
	calculator *pricing.Calculator
	bank       payment.BankAccount
	qrEncoder  payment.QRGenerator
	now        func() time.Time
}

func NewStorefrontService(backend Backend, cache CatalogCache, sessions SessionStore, publisher EventPublisher,
	calculator *pricing.Calculator, bank payment.BankAccount, qr payment.QRGenerator) *StorefrontService {
	return &StorefrontService{
		backend:    backend,
		cache:      cache,
		sessions:   sessions,
		publisher:  publisher,
		calculator: calculator,
		bank:       bank,
		qrEncoder:  qr,
		now:        time.Now,
	}
}

// SetClock replaces the wall clock used for credential expiry, promotion
// windows and reservation rules.
func (s *StorefrontService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *StorefrontService) OpenSession(ctx context.Context, token string, rawProfile []byte) (*session.Session, error) {
	sess, err := session.Open(token, rawProfile, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SaveSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	log.Printf("[storefront-svc] session %s opened (authenticated=%t)", sess.ID, sess.Authenticated())
	return sess, nil
}

func (s *StorefrontService) CloseSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.DeleteSession(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("[storefront-svc] session %s closed", sessionID)
	return nil
}

// Menu serves the catalog from cache, falling back to the backend and
// refilling the cache on a miss.
func (s *StorefrontService) Menu(ctx context.Context) (*catalog.Catalog, error) {
	items, err := s.cache.GetCatalog(ctx)
	if err == nil {
		return catalog.New(items), nil
	}
	if !errors.Is(err, storage.ErrCacheMiss) {
		log.Printf("WARNING: catalog cache read failed: %v", err)
	}

	items, err = s.backend.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := s.cache.SetCatalog(ctx, items); err != nil {
		log.Printf("WARNING: failed to cache catalog: %v", err)
	}
	return catalog.New(items), nil
}

func (s *StorefrontService) Cart(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.CartView, error) {
	if err := validateMode(mode); err != nil {
		return domain.CartView{}, err
	}
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.CartView{}, err
	}
	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.CartView{}, err
	}
	return s.cartView(sess, menu, mode), nil
}

func (s *StorefrontService) Increment(ctx context.Context, sessionID string, itemID int, mode domain.FulfillmentMode) (domain.CartView, error) {
	if err := validateMode(mode); err != nil {
		return domain.CartView{}, err
	}
	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.CartView{}, err
	}
	if _, ok := menu.Lookup(itemID); !ok {
		return domain.CartView{}, ErrUnknownItem
	}
	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart.Increment(itemID)
		return nil
	})
	if err != nil {
		return domain.CartView{}, err
	}
	return s.cartView(sess, menu, mode), nil
}

func (s *StorefrontService) Decrement(ctx context.Context, sessionID string, itemID int, mode domain.FulfillmentMode) (domain.CartView, error) {
	if err := validateMode(mode); err != nil {
		return domain.CartView{}, err
	}
	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.CartView{}, err
	}
	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart.Decrement(itemID)
		return nil
	})
	if err != nil {
		return domain.CartView{}, err
	}
	return s.cartView(sess, menu, mode), nil
}

func (s *StorefrontService) ClearCart(ctx context.Context, sessionID string) error {
	_, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart.Clear()
		return nil
	})
	return err
}

// ApplyPromotion matches code against the promotions active today. A rejected
// code keeps the current selection.
func (s *StorefrontService) ApplyPromotion(ctx context.Context, sessionID, code string, mode domain.FulfillmentMode) (domain.CartView, error) {
	if err := validateMode(mode); err != nil {
		return domain.CartView{}, err
	}
	if strings.TrimSpace(code) == "" {
		return domain.CartView{}, pricing.ErrEmptyCode
	}
	all, err := s.backend.FetchPromotions(ctx)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("failed to load promotions: %w", err)
	}
	active := pricing.ActivePromotions(all, s.now())

	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.CartView{}, err
	}
	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		_, err := sess.Promotion.Apply(code, active)
		return err
	})
	if err != nil {
		return domain.CartView{}, err
	}
	return s.cartView(sess, menu, mode), nil
}

func (s *StorefrontService) ClearPromotion(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.CartView, error) {
	if err := validateMode(mode); err != nil {
		return domain.CartView{}, err
	}
	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.CartView{}, err
	}
	sess, err := s.update(ctx, sessionID, func(sess *session.Session) error {
		sess.Promotion.Clear()
		return nil
	})
	if err != nil {
		return domain.CartView{}, err
	}
	return s.cartView(sess, menu, mode), nil
}

func (s *StorefrontService) Quote(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.PricingResult, error) {
	view, err := s.Cart(ctx, sessionID, mode)
	if err != nil {
		return domain.PricingResult{}, err
	}
	return view.Pricing, nil
}

// PlaceOrder prices the cart afresh and submits it under the session's submit
// gate. Ordered lines and the promotion are cleared only after the backend
// accepts the order.
func (s *StorefrontService) PlaceOrder(ctx context.Context, sessionID string, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	if err := validateOrderRequest(req); err != nil {
		return domain.OrderConfirmation{}, err
	}
	if err := s.sessions.AcquireSubmit(ctx, sessionID); err != nil {
		return domain.OrderConfirmation{}, err
	}
	defer s.release(ctx, sessionID)

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}
	if sess.Cart.IsEmpty() {
		return domain.OrderConfirmation{}, ErrEmptyCart
	}

	menu, err := s.Menu(ctx)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}
	lines := sess.Cart.Lines(menu)
	if len(lines) == 0 {
		return domain.OrderConfirmation{}, ErrEmptyCart
	}
	if dropped := sess.Cart.TotalDistinctLines() - len(lines); dropped > 0 {
		log.Printf("WARNING: %d cart items of session %s are off the menu and stay out of the order", dropped, sessionID)
	}
	promo := sess.Promotion.Promotion()
	quote := s.calculator.QuoteLines(lines, promo, req.Mode)

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = sess.Profile.Phone
	}
	order := domain.OrderSubmission{
		ShippingInfo: domain.ShippingInfoPayload{
			DiaChi:      strings.TrimSpace(req.Address),
			SoDienThoai: phone,
		},
		PaymentMethod:  req.PaymentMethod,
		DiscountAmount: quote.Discount,
	}
	ordered := make([]int, 0, len(lines))
	for _, line := range lines {
		order.ChiTietList = append(order.ChiTietList, domain.OrderLinePayload{MaMon: line.ItemID, SoLuong: line.Quantity})
		ordered = append(ordered, line.ItemID)
	}
	if promo != nil {
		id := domain.FlexID(promo.ID)
		order.PromotionID = &id
	}

	receipt, err := s.backend.SubmitOrder(ctx, sess.Token, order)
	if err != nil {
		s.handleBackendError(ctx, sessionID, err)
		return domain.OrderConfirmation{}, fmt.Errorf("failed to submit order: %w", err)
	}
	log.Printf("[storefront-svc] order %s submitted for session %s (total %s)", receipt.ID, sessionID, quote.GrandTotal)

	if _, err := s.sessions.UpdateSession(ctx, sessionID, func(sess *session.Session) error {
		sess.Cart.Remove(ordered...)
		sess.Promotion.Clear()
		return nil
	}); err != nil {
		log.Printf("WARNING: failed to clear cart after order %s: %v", receipt.ID, err)
	}

	s.publish(ctx, domain.Event{
		Type:      domain.EventOrderSubmitted,
		SessionID: sessionID,
		RefID:     receipt.ID,
		Amount:    quote.GrandTotal,
		Items:     len(lines),
		Timestamp: s.now(),
	})

	confirmation := domain.OrderConfirmation{
		OrderID: receipt.ID,
		Pricing: quote,
		Message: receipt.Message,
	}
	if req.PaymentMethod == domain.PaymentBanking {
		confirmation.TransferURL = payment.TransferImageURL(s.bank, quote.GrandTotal, payment.TransferNote(phone, receipt.ID))
	}
	return confirmation, nil
}

// TransferQR renders the bank-transfer image URL for a finished order as a
// PNG QR code for in-store display.
func (s *StorefrontService) TransferQR(amount int64, phone, orderID string) ([]byte, error) {
	if amount <= 0 || (strings.TrimSpace(phone) == "" && strings.TrimSpace(orderID) == "") {
		return nil, ErrInvalidTransferInput
	}
	url := payment.TransferImageURL(s.bank, decimal.NewFromInt(amount), payment.TransferNote(phone, orderID))
	return s.qrEncoder.Generate(url)
}

func (s *StorefrontService) load(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := s.sessions.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.CheckCredential(sess.Token, s.now()); err != nil {
		s.teardown(ctx, sessionID)
		return nil, err
	}
	return sess, nil
}

// update runs fn against the stored session. A session whose credential has
// expired is torn down instead.
func (s *StorefrontService) update(ctx context.Context, sessionID string, fn func(*session.Session) error) (*session.Session, error) {
	sess, err := s.sessions.UpdateSession(ctx, sessionID, func(sess *session.Session) error {
		if err := session.CheckCredential(sess.Token, s.now()); err != nil {
			return err
		}
		return fn(sess)
	})
	if errors.Is(err, session.ErrCredentialExpired) {
		s.teardown(ctx, sessionID)
	}
	return sess, err
}

func (s *StorefrontService) teardown(ctx context.Context, sessionID string) {
	_, err := s.sessions.UpdateSession(ctx, sessionID, func(sess *session.Session) error {
		sess.Teardown()
		return nil
	})
	if err != nil {
		log.Printf("WARNING: failed to tear down session %s: %v", sessionID, err)
		return
	}
	log.Printf("[storefront-svc] session %s signed out after authentication failure", sessionID)
}

func (s *StorefrontService) handleBackendError(ctx context.Context, sessionID string, err error) {
	if errors.Is(err, storage.ErrUnauthorized) {
		s.teardown(ctx, sessionID)
	}
}

func (s *StorefrontService) release(ctx context.Context, sessionID string) {
	if err := s.sessions.ReleaseSubmit(ctx, sessionID); err != nil {
		log.Printf("WARNING: failed to release submission gate for %s: %v", sessionID, err)
	}
}

func (s *StorefrontService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("WARNING: failed to publish %s event: %v", event.Type, err)
	}
}

func (s *StorefrontService) cartView(sess *session.Session, menu *catalog.Catalog, mode domain.FulfillmentMode) domain.CartView {
	lines := sess.Cart.Lines(menu)
	promo := sess.Promotion.Promotion()
	return domain.CartView{
		Lines:         lines,
		Count:         sess.Cart.TotalDistinctLines(),
		PromotionCode: sess.Promotion.Code,
		Promotion:     promo,
		Pricing:       s.calculator.QuoteLines(lines, promo, mode),
	}
}

func validateMode(mode domain.FulfillmentMode) error {
	switch mode {
	case domain.ModePickup, domain.ModeDelivery:
		return nil
	}
	return ErrInvalidMode
}

func validateOrderRequest(req domain.OrderRequest) error {
	if err := validateMode(req.Mode); err != nil {
		return err
	}
	switch req.PaymentMethod {
	case domain.PaymentCOD, domain.PaymentBanking:
	default:
		return ErrInvalidPayment
	}
	if req.Mode == domain.ModeDelivery {
		if strings.TrimSpace(req.Address) == "" {
			return ErrAddressRequired
		}
		if strings.TrimSpace(req.Phone) == "" {
			return ErrDeliveryPhone
		}
	}
	return nil
}
