package catalog

import (
	"log"

	"bistro-storefront/storefront-svc/internal/domain"
)

// Catalog is an immutable snapshot of the menu. A refresh builds a new Catalog
// instead of mutating an existing one.
type Catalog struct {
	items map[int]domain.FoodItem
	order []int
}

func New(items []domain.FoodItem) *Catalog {
	c := &Catalog{items: make(map[int]domain.FoodItem, len(items))}
	for _, item := range items {
		if _, dup := c.items[item.ID]; !dup {
			c.order = append(c.order, item.ID)
		}
		c.items[item.ID] = item
	}
	return c
}

// FromPayloads normalizes backend catalog rows; rows that fail normalization
// are logged and skipped.
func FromPayloads(rows []domain.CatalogItemPayload) *Catalog {
	items := make([]domain.FoodItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.Normalize()
		if err != nil {
			log.Printf("WARNING: skipping catalog row: %v", err)
			continue
		}
		items = append(items, item)
	}
	return New(items)
}

func (c *Catalog) Lookup(id int) (domain.FoodItem, bool) {
	if c == nil {
		return domain.FoodItem{}, false
	}
	item, ok := c.items[id]
	return item, ok
}

// Items returns the menu in the order it was fetched.
func (c *Catalog) Items() []domain.FoodItem {
	if c == nil {
		return nil
	}
	items := make([]domain.FoodItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
