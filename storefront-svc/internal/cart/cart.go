package cart

import (
	"sort"

	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// Cart maps catalog item ids to a positive quantity. An id whose quantity
// would drop to zero is removed, never stored as zero.
type Cart struct {
	items map[int]int
}

func New() *Cart {
	return &Cart{items: make(map[int]int)}
}

// FromSnapshot rebuilds a cart from persisted quantities. Non-positive
// quantities are dropped.
func FromSnapshot(snapshot map[int]int) *Cart {
	c := New()
	for id, qty := range snapshot {
		if qty > 0 {
			c.items[id] = qty
		}
	}
	return c
}

func (c *Cart) Increment(itemID int) {
	c.items[itemID]++
}

func (c *Cart) Decrement(itemID int) {
	qty, ok := c.items[itemID]
	if !ok {
		return
	}
	if qty > 1 {
		c.items[itemID] = qty - 1
		return
	}
	delete(c.items, itemID)
}

func (c *Cart) Clear() {
	c.items = make(map[int]int)
}

// Remove drops the given items whatever their quantity.
func (c *Cart) Remove(itemIDs ...int) {
	for _, id := range itemIDs {
		delete(c.items, id)
	}
}

// TotalDistinctLines is the badge count: one per item id, not per unit.
func (c *Cart) TotalDistinctLines() int {
	return len(c.items)
}

func (c *Cart) Quantity(itemID int) int {
	return c.items[itemID]
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Snapshot() map[int]int {
	out := make(map[int]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

// ItemIDs returns the ids in the cart in ascending order.
func (c *Cart) ItemIDs() []int {
	ids := make([]int, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Lines joins the cart with the catalog. Ids missing from the catalog are
// left out of the result but stay in the cart.
func (c *Cart) Lines(menu *catalog.Catalog) []domain.ResolvedCartLine {
	lines := make([]domain.ResolvedCartLine, 0, len(c.items))
	for _, id := range c.ItemIDs() {
		item, ok := menu.Lookup(id)
		if !ok {
			continue
		}
		qty := c.items[id]
		lines = append(lines, domain.ResolvedCartLine{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Category:  item.Category,
			ImageURL:  item.ImageURL,
			Quantity:  qty,
			LineTotal: LineTotal(item.Price, qty),
		})
	}
	return lines
}

// LineTotal rounds the unit price to a whole currency unit before multiplying.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Round(0).Mul(decimal.NewFromInt(int64(qty)))
}
