package reservation

import (
	"sort"

	"bistro-storefront/storefront-svc/internal/catalog"
	"bistro-storefront/storefront-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// DishPicker attaches pre-ordered dishes to a reservation. Quantities are
// edited in a scratch map and only reach the committed list on Commit.
type DishPicker struct {
	committed []domain.DishSelectionEntry
	scratch   map[int]int
}

func NewDishPicker() *DishPicker {
	return &DishPicker{}
}

// RestorePicker rebuilds a picker from persisted state. A nil scratch means
// the picker is closed.
func RestorePicker(committed []domain.DishSelectionEntry, scratch map[int]int) *DishPicker {
	p := &DishPicker{committed: cloneEntries(committed)}
	if scratch != nil {
		p.scratch = make(map[int]int, len(scratch))
		for id, qty := range scratch {
			if qty > 0 {
				p.scratch[id] = qty
			}
		}
	}
	return p
}

// Open starts a scratch session pre-populated with the committed quantities.
// Reopening an already open picker keeps its scratch edits.
func (p *DishPicker) Open() {
	if p.scratch != nil {
		return
	}
	p.scratch = make(map[int]int, len(p.committed))
	for _, entry := range p.committed {
		p.scratch[entry.ItemID] = entry.Quantity
	}
}

func (p *DishPicker) IsOpen() bool {
	return p.scratch != nil
}

// AdjustQuantity adds delta to the scratch quantity and removes the item once
// it reaches zero or below. The picker opens on first use.
func (p *DishPicker) AdjustQuantity(itemID, delta int) {
	p.Open()
	qty := p.scratch[itemID] + delta
	if qty <= 0 {
		delete(p.scratch, itemID)
		return
	}
	p.scratch[itemID] = qty
}

func (p *DishPicker) ScratchQuantity(itemID int) int {
	return p.scratch[itemID]
}

// Commit replaces the committed list with the scratch quantities, capturing
// name, price and image from the menu. An item the menu no longer lists keeps
// its earlier snapshot; one with no snapshot at all is dropped.
func (p *DishPicker) Commit(menu *catalog.Catalog) []domain.DishSelectionEntry {
	if p.scratch == nil {
		return p.Committed()
	}

	previous := make(map[int]domain.DishSelectionEntry, len(p.committed))
	for _, entry := range p.committed {
		previous[entry.ItemID] = entry
	}

	ids := make([]int, 0, len(p.scratch))
	for id := range p.scratch {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	committed := make([]domain.DishSelectionEntry, 0, len(ids))
	for _, id := range ids {
		entry, known := previous[id]
		if item, ok := menu.Lookup(id); ok {
			entry = domain.DishSelectionEntry{
				ItemID:   item.ID,
				Name:     item.Name,
				Price:    item.Price,
				ImageURL: item.ImageURL,
				Note:     entry.Note,
			}
		} else if !known {
			continue
		}
		entry.Quantity = p.scratch[id]
		committed = append(committed, entry)
	}

	p.committed = committed
	p.scratch = nil
	return p.Committed()
}

func (p *DishPicker) Discard() {
	p.scratch = nil
}

func (p *DishPicker) RemoveCommitted(itemID int) {
	kept := p.committed[:0]
	for _, entry := range p.committed {
		if entry.ItemID != itemID {
			kept = append(kept, entry)
		}
	}
	p.committed = kept
}

func (p *DishPicker) Committed() []domain.DishSelectionEntry {
	return cloneEntries(p.committed)
}

func (p *DishPicker) Scratch() map[int]int {
	if p.scratch == nil {
		return nil
	}
	out := make(map[int]int, len(p.scratch))
	for id, qty := range p.scratch {
		out[id] = qty
	}
	return out
}

// Total sums the committed entries at their snapshot prices.
func (p *DishPicker) Total() decimal.Decimal {
	return EntriesTotal(p.committed)
}

func EntriesTotal(entries []domain.DishSelectionEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Price.Mul(decimal.NewFromInt(int64(entry.Quantity))))
	}
	return total
}

func cloneEntries(entries []domain.DishSelectionEntry) []domain.DishSelectionEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]domain.DishSelectionEntry, len(entries))
	copy(out, entries)
	return out
}
