package service

import (
	"context"

	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/session"
)

type StorefrontServiceInterface interface {
	OpenSession(ctx context.Context, token string, rawProfile []byte) (*session.Session, error)
	CloseSession(ctx context.Context, sessionID string) error
	Menu(ctx context.Context) (*catalog.Catalog, error)

	Cart(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.CartView, error)
	Increment(ctx context.Context, sessionID string, itemID int, mode domain.FulfillmentMode) (domain.CartView, error)
	Decrement(ctx context.Context, sessionID string, itemID int, mode domain.FulfillmentMode) (domain.CartView, error)
	ClearCart(ctx context.Context, sessionID string) error
	ApplyPromotion(ctx context.Context, sessionID, code string, mode domain.FulfillmentMode) (domain.CartView, error)
	ClearPromotion(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.CartView, error)
	Quote(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.PricingResult, error)
	PlaceOrder(ctx context.Context, sessionID string, req domain.OrderRequest) (domain.OrderConfirmation, error)

	ValidateReservationTime(value string) error
	Dishes(ctx context.Context, sessionID string) (domain.DishesView, error)
	OpenDishes(ctx context.Context, sessionID string) (domain.DishesView, error)
	AdjustDish(ctx context.Context, sessionID string, itemID, delta int) (domain.DishesView, error)
	CommitDishes(ctx context.Context, sessionID string) (domain.DishesView, error)
	DiscardDishes(ctx context.Context, sessionID string) (domain.DishesView, error)
	RemoveDish(ctx context.Context, sessionID string, itemID int) (domain.DishesView, error)
	SubmitReservation(ctx context.Context, sessionID string, draft domain.ReservationDraft) (domain.ReservationConfirmation, error)

	TransferQR(amount int64, phone, orderID string) ([]byte, error)
}

// Backend is the restaurant's order and reservation system.
type Backend interface {
	FetchCatalog(ctx context.Context) ([]domain.FoodItem, error)
	FetchPromotions(ctx context.Context) ([]domain.Promotion, error)
	SubmitOrder(ctx context.Context, token string, order domain.OrderSubmission) (domain.SubmissionReceipt, error)
	SubmitReservation(ctx context.Context, token string, res domain.ReservationSubmission) (domain.SubmissionReceipt, error)
}

type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]domain.FoodItem, error)
	SetCatalog(ctx context.Context, items []domain.FoodItem) error
}

type SessionStore interface {
	LoadSession(ctx context.Context, id string) (*session.Session, error)
	SaveSession(ctx context.Context, s *session.Session) error
	UpdateSession(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error)
	DeleteSession(ctx context.Context, id string) error
	AcquireSubmit(ctx context.Context, id string) error
	ReleaseSubmit(ctx context.Context, id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

var _ StorefrontServiceInterface = (*StorefrontService)(nil)
