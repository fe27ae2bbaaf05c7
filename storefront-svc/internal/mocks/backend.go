package mocks

import (
	"context"

	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Backend is a testify mock of service.Backend.
type Backend struct {
	mock.Mock
}

func (_m *Backend) FetchCatalog(ctx context.Context) ([]domain.FoodItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.FoodItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.FoodItem)
	}
	return r0, ret.Error(1)
}

func (_m *Backend) FetchPromotions(ctx context.Context) ([]domain.Promotion, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Promotion
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Promotion)
	}
	return r0, ret.Error(1)
}

func (_m *Backend) SubmitOrder(ctx context.Context, token string, order domain.OrderSubmission) (domain.SubmissionReceipt, error) {
	ret := _m.Called(ctx, token, order)

	var r0 domain.SubmissionReceipt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.SubmissionReceipt)
	}
	return r0, ret.Error(1)
}

func (_m *Backend) SubmitReservation(ctx context.Context, token string, res domain.ReservationSubmission) (domain.SubmissionReceipt, error) {
	ret := _m.Called(ctx, token, res)

	var r0 domain.SubmissionReceipt
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(domain.SubmissionReceipt)
	}
	return r0, ret.Error(1)
}

// NewBackend registers AssertExpectations with the test's cleanup.
func NewBackend(t interface {
	mock.TestingT
	Cleanup(func())
}) *Backend {
	m := &Backend{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
