package catalog

import (
	"encoding/json"
	"testing"

	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPayloads_CoercesPricesAndSkipsBadRows(t *testing.T) {
	raw := `[
		{"MaMon": 1, "TenMon": "Pho bo", "Gia": "50000.00", "HinhAnh": "pho.jpg", "loaiMon": {"TenLoai": "Mon nuoc"}},
		{"MaMon": 2, "TenMon": "Tra da", "Gia": 5000},
		{"MaMon": 0, "TenMon": "Ghost", "Gia": 1},
		{"MaMon": 3, "TenMon": "Broken", "Gia": "-10"}
	]`
	var rows []domain.CatalogItemPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &rows))

	c := FromPayloads(rows)
	assert.Equal(t, 2, c.Len())

	pho, ok := c.Lookup(1)
	require.True(t, ok)
	assert.True(t, pho.Price.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, "Mon nuoc", pho.Category)
	assert.Equal(t, "pho.jpg", pho.ImageURL)

	tra, ok := c.Lookup(2)
	require.True(t, ok)
	assert.True(t, tra.Price.Equal(decimal.NewFromInt(5000)))
	assert.Empty(t, tra.Category)

	_, ok = c.Lookup(3)
	assert.False(t, ok)
}

func TestNew_KeepsFetchOrderAndLastDuplicateWins(t *testing.T) {
	c := New([]domain.FoodItem{
		{ID: 7, Name: "first"},
		{ID: 3, Name: "second"},
		{ID: 7, Name: "replaced"},
	})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].ID)
	assert.Equal(t, "replaced", items[0].Name)
	assert.Equal(t, 3, items[1].ID)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	_, ok := c.Lookup(1)
	assert.False(t, ok)
	assert.Nil(t, c.Items())
	assert.Zero(t, c.Len())
}
