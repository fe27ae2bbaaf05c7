package mocks

import (
	"context"

	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

// CatalogCache is a testify mock of service.CatalogCache.
type CatalogCache struct {
	mock.Mock
}

func (_m *CatalogCache) GetCatalog(ctx context.Context) ([]domain.FoodItem, error) {
	ret := _m.Called(ctx)

	var r0 []domain.FoodItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.FoodItem)
	}
	return r0, ret.Error(1)
}

func (_m *CatalogCache) SetCatalog(ctx context.Context, items []domain.FoodItem) error {
	ret := _m.Called(ctx, items)
	return ret.Error(0)
}

// NewCatalogCache registers AssertExpectations with the test's cleanup.
func NewCatalogCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogCache {
	m := &CatalogCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
