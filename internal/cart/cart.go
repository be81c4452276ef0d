package cart

import (
	"sync"

	"github.com/cardap-io/cardap/internal/domain"
)

// Line is one fully configured, priced purchase unit. TotalPrice is locked
// in when the line is created and only ever rescaled on quantity changes.
// It is never re-derived from catalog data, so later catalog edits cannot
// reprice an open cart.
type Line struct {
	Product            domain.Product // read-only snapshot
	Quantity           int
	SelectedExtras     []domain.Extra
	SelectedVariations []domain.SelectedVariation
	Observations       string
	TotalPrice         int64
}

// UnitPrice returns the locked-in per-unit price of the line.
func (l Line) UnitPrice() int64 {
	if l.Quantity < 1 {
		return l.TotalPrice
	}
	return l.TotalPrice / int64(l.Quantity)
}

// Cart is the ordered list of lines for one browsing session. It lives only
// in memory: it is destroyed on order submission or session expiry, never
// persisted.
//
// Two adds of the same product and configuration produce two distinct lines;
// configurations are free-form (extras, variations, observations), so merge
// equality is deliberately not defined.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine appends a configured line, computing its total as
// quantity × (base price + Σ variation adjustments + Σ extra prices).
// Quantities below 1 are treated as 1. Callers gate this on the selection
// engine's CanSubmit; the cart does not re-validate cardinality.
func (c *Cart) AddLine(product domain.Product, quantity int, extras []domain.Extra, variations []domain.SelectedVariation, observations string) Line {
	if quantity < 1 {
		quantity = 1
	}

	unit := product.BasePrice
	for _, v := range variations {
		unit += v.PriceAdjustment
	}
	for _, e := range extras {
		unit += e.Price
	}

	line := Line{
		Product:            product,
		Quantity:           quantity,
		SelectedExtras:     extras,
		SelectedVariations: variations,
		Observations:       observations,
		TotalPrice:         unit * int64(quantity),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
	return line
}

// UpdateQuantity sets a line's quantity, rescaling its locked-in unit price.
// A new quantity below 1 removes the line entirely (decrementing a
// quantity-1 line deletes it; quantity never reaches zero).
func (c *Cart) UpdateQuantity(index, newQuantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return domain.Errorf(domain.EINVALID, "cart.update_quantity", "no cart line at index %d", index)
	}

	if newQuantity < 1 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
		return nil
	}

	line := &c.lines[index]
	unit := line.TotalPrice / int64(line.Quantity)
	line.Quantity = newQuantity
	line.TotalPrice = unit * int64(newQuantity)
	return nil
}

// RemoveLine deletes a line unconditionally.
func (c *Cart) RemoveLine(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return domain.Errorf(domain.EINVALID, "cart.remove_line", "no cart line at index %d", index)
	}

	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Total sums every line's locked-in total. Checkout compares this against
// the restaurant's minimum order value.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, l := range c.lines {
		total += l.TotalPrice
	}
	return total
}

// Lines returns a snapshot of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// ItemCount returns the summed quantity across lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Clear empties the cart. Called after a successful order hand-off.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}
