package cart

import (
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Item is one shelf entry's presence in the cart. The JSON keys are the
// wire keys the shelf has always used, so carts saved by older sessions
// still load.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"nome"`
	UnitPrice float64 `json:"valor"`
	Quantity  int     `json:"quantidade"`
	CoverURL  string  `json:"capa_url,omitempty"`
}

var ErrInvalidPrice = errors.New("invalid price")

// Cart holds the session's line items in first-add order, at most one line
// per id.
type Cart struct {
	items []Item
	log   *zap.Logger
}

func New(log *zap.Logger) *Cart {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cart{log: log}
}

func normalizeID(id string) string { return strings.TrimSpace(id) }

// Add appends a new line with quantity 1, or increments the existing line
// for the same id.
func (c *Cart) Add(id, name string, price float64, coverURL string) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		c.log.Error("add to cart with invalid price", zap.String("id", id), zap.Float64("price", price))
		return ErrInvalidPrice
	}

	idStr := normalizeID(id)
	if i := c.index(idStr); i >= 0 {
		c.items[i].Quantity++
		return nil
	}

	c.items = append(c.items, Item{
		ID:        idStr,
		Name:      name,
		UnitPrice: price,
		Quantity:  1,
		CoverURL:  coverURL,
	})
	return nil
}

// UpdateQuantity applies delta to the line with the given id. A resulting
// quantity of zero or less removes the line. Returns false when no line
// matched, which is logged and otherwise a no-op.
func (c *Cart) UpdateQuantity(id string, delta int) bool {
	idStr := normalizeID(id)
	i := c.index(idStr)
	if i < 0 {
		c.log.Warn("quantity update for item not in cart", zap.String("id", id))
		return false
	}

	c.items[i].Quantity += delta
	if c.items[i].Quantity <= 0 {
		return c.Remove(id)
	}
	return true
}

// Remove drops the line with the given id. Returns false when nothing
// matched.
func (c *Cart) Remove(id string) bool {
	idStr := normalizeID(id)
	before := len(c.items)

	kept := c.items[:0]
	for _, it := range c.items {
		if normalizeID(it.ID) != idStr {
			kept = append(kept, it)
		}
	}
	c.items = kept

	if len(c.items) == before {
		c.log.Warn("remove for item not in cart", zap.String("id", id))
		return false
	}
	return true
}

// Total sums unit price times quantity over all lines. Stored values that
// are not finite count as zero rather than poisoning the sum.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.items {
		price := it.UnitPrice
		if math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}
		total += price * float64(qty)
	}
	return total
}

// Count is the sum of all quantities, shown by the cart indicator.
func (c *Cart) Count() int {
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy in first-add order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Empty() { c.items = nil }

// Replace swaps in a previously persisted set of lines, e.g. at startup.
func (c *Cart) Replace(items []Item) {
	c.items = make([]Item, len(items))
	copy(c.items, items)
}

func (c *Cart) index(idStr string) int {
	for i, it := range c.items {
		if normalizeID(it.ID) == idStr {
			return i
		}
	}
	return -1
}
