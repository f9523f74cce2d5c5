// Package cart holds the in-memory cart of one shopping session.
//
// A Store is owned by whoever composes the session and is not safe for
// concurrent use; callers serialise access per session. Every mutation builds
// a new line slice, so slices returned by Lines never change afterwards.
package cart

import (
	"fmt"

	"catalog-storefront/internal/domain"
)

// Item is the product being added to a cart.
type Item struct {
	ProductID string
	Name      string
	UnitPrice *int64
}

// Store is a session cart.
type Store struct {
	lines    []domain.CartLine
	onNotify func(text string)
}

// Option configures a Store.
type Option func(*Store)

// WithNotifier registers the receiver of add-to-cart notifications.
func WithNotifier(fn func(text string)) Option {
	return func(s *Store) {
		s.onNotify = fn
	}
}

// New returns an empty cart.
func New(opts ...Option) *Store {
	return Restore(nil, opts...)
}

// Restore rebuilds a cart from previously saved lines. Lines with a
// non-positive quantity are normalised to 1.
func Restore(lines []domain.CartLine, opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if len(lines) > 0 {
		s.lines = make([]domain.CartLine, len(lines))
		copy(s.lines, lines)
		for i := range s.lines {
			if s.lines[i].Quantity < 1 {
				s.lines[i].Quantity = 1
			}
		}
	}
	return s
}

// AddItem adds quantity units of item, optionally as a specific variant.
// A matching line has its quantity increased; otherwise a line is appended.
func (s *Store) AddItem(item Item, quantity int, variant *domain.LineVariant) {
	if quantity < 1 {
		quantity = 1
	}

	line := domain.CartLine{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  quantity,
	}
	if variant != nil {
		v := *variant
		v.Attributes = append(domain.Attributes(nil), variant.Attributes...)
		line.Variant = &v
	}

	id := line.Identity()
	next := make([]domain.CartLine, 0, len(s.lines)+1)
	merged := false
	for _, existing := range s.lines {
		if !merged && domain.SameIdentity(existing.Identity(), id) {
			existing.Quantity += quantity
			merged = true
		}
		next = append(next, existing)
	}
	if !merged {
		next = append(next, line)
	}
	s.lines = next

	s.notify(addedText(item.Name, variant))
}

// RemoveItem removes the line for productID. An empty variantID addresses
// only the line without a variant; variant lines of the product stay.
func (s *Store) RemoveItem(productID, variantID string) {
	if variantID == "" {
		s.Remove(domain.BareProduct{ProductID: productID})
		return
	}
	s.Remove(domain.ProductVariant{ProductID: productID, VariantID: variantID})
}

// Remove drops the line with the given identity. Unknown identities are
// ignored.
func (s *Store) Remove(id domain.Identity) {
	next := make([]domain.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if domain.SameIdentity(line.Identity(), id) {
			continue
		}
		next = append(next, line)
	}
	if len(next) == len(s.lines) {
		return
	}
	s.lines = next
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the sum of every line total.
func (s *Store) Total() int64 {
	var total int64
	for _, line := range s.lines {
		total += line.LineTotal()
	}
	return total
}

// Count is the sum of every line quantity.
func (s *Store) Count() int {
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	return len(s.lines) == 0
}

func (s *Store) notify(text string) {
	if s.onNotify != nil {
		s.onNotify(text)
	}
}

func addedText(name string, variant *domain.LineVariant) string {
	if variant == nil {
		return fmt.Sprintf("Agregado: %s", name)
	}
	label := variant.Attributes.Label()
	if label == "" {
		return fmt.Sprintf("Agregado: %s", name)
	}
	return fmt.Sprintf("Agregado: %s (%s)", name, label)
}
