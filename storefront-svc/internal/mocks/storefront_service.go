package mocks

import (
	"context"

	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"
	"bistro-storefront/storefront-svc/internal/session"

	"github.com/stretchr/testify/mock"
)

// StorefrontServiceInterface is a testify mock of service.StorefrontServiceInterface.
type StorefrontServiceInterface struct {
	mock.Mock
}

func (_m *StorefrontServiceInterface) OpenSession(ctx context.Context, token string, rawProfile []byte) (*session.Session, error) {
	ret := _m.Called(ctx, token, rawProfile)

	var r0 *session.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*session.Session)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) CloseSession(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

func (_m *StorefrontServiceInterface) Menu(ctx context.Context) (*catalog.Catalog, error) {
	ret := _m.Called(ctx)

	var r0 *catalog.Catalog
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*catalog.Catalog)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) Cart(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.CartView, error) {
	ret := _m.Called(ctx, sessionID, mode)

	var r0 domain.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.CartView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) Increment(ctx context.Context, sessionID string, itemID int, mode domain.FulfillmentMode) (domain.CartView, error) {
	ret := _m.Called(ctx, sessionID, itemID, mode)

	var r0 domain.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.CartView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) Decrement(ctx context.Context, sessionID string, itemID int, mode domain.FulfillmentMode) (domain.CartView, error) {
	ret := _m.Called(ctx, sessionID, itemID, mode)

	var r0 domain.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.CartView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) ClearCart(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

func (_m *StorefrontServiceInterface) ApplyPromotion(ctx context.Context, sessionID string, code string, mode domain.FulfillmentMode) (domain.CartView, error) {
	ret := _m.Called(ctx, sessionID, code, mode)

	var r0 domain.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.CartView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) ClearPromotion(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.CartView, error) {
	ret := _m.Called(ctx, sessionID, mode)

	var r0 domain.CartView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.CartView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) Quote(ctx context.Context, sessionID string, mode domain.FulfillmentMode) (domain.PricingResult, error) {
	ret := _m.Called(ctx, sessionID, mode)

	var r0 domain.PricingResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.PricingResult)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) PlaceOrder(ctx context.Context, sessionID string, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	ret := _m.Called(ctx, sessionID, req)

	var r0 domain.OrderConfirmation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.OrderConfirmation)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) ValidateReservationTime(value string) error {
	ret := _m.Called(value)
	return ret.Error(0)
}

func (_m *StorefrontServiceInterface) Dishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 domain.DishesView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DishesView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) OpenDishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 domain.DishesView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DishesView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) AdjustDish(ctx context.Context, sessionID string, itemID int, delta int) (domain.DishesView, error) {
	ret := _m.Called(ctx, sessionID, itemID, delta)

	var r0 domain.DishesView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DishesView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) CommitDishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 domain.DishesView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DishesView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) DiscardDishes(ctx context.Context, sessionID string) (domain.DishesView, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 domain.DishesView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DishesView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) RemoveDish(ctx context.Context, sessionID string, itemID int) (domain.DishesView, error) {
	ret := _m.Called(ctx, sessionID, itemID)

	var r0 domain.DishesView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.DishesView)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) SubmitReservation(ctx context.Context, sessionID string, draft domain.ReservationDraft) (domain.ReservationConfirmation, error) {
	ret := _m.Called(ctx, sessionID, draft)

	var r0 domain.ReservationConfirmation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.ReservationConfirmation)
	}
	return r0, ret.Error(1)
}

func (_m *StorefrontServiceInterface) TransferQR(amount int64, phone string, orderID string) ([]byte, error) {
	ret := _m.Called(amount, phone, orderID)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

// NewStorefrontServiceInterface registers AssertExpectations with the test's cleanup.
func NewStorefrontServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StorefrontServiceInterface {
	m := &StorefrontServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
