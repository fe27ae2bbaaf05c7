package mocks

import (
	"context"

	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// EventPublisher is a testify mock of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (_m *EventPublisher) Publish(ctx context.Context, event domain.Event) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// NewEventPublisher registers AssertExpectations with the test's cleanup.
func NewEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
