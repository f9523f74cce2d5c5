package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CartLine is one row of a cart: a bare product or one specific variant of it.
type CartLine struct {
	ProductID string       `json:"productId"`
	Name      string       `json:"name"`
	UnitPrice *int64       `json:"unitPrice"`
	Quantity  int          `json:"quantity"`
	Variant   *LineVariant `json:"variant,omitempty"`
}

// LineVariant carries the chosen variant of a cart line.
type LineVariant struct {
	VariantID  string     `json:"variantId"`
	Attributes Attributes `json:"attributes"`
}

// Identity derives the merge key of the line.
func (l CartLine) Identity() Identity {
	if l.Variant != nil {
		return ProductVariant{ProductID: l.ProductID, VariantID: l.Variant.VariantID}
	}
	return BareProduct{ProductID: l.ProductID}
}

// UnitPriceOrZero treats a missing or negative price as zero.
func (l CartLine) UnitPriceOrZero() int64 {
	if l.UnitPrice == nil || *l.UnitPrice < 0 {
		return 0
	}
	return *l.UnitPrice
}

// LineTotal is the unit price (or zero) times the quantity.
func (l CartLine) LineTotal() int64 {
	return l.UnitPriceOrZero() * int64(l.Quantity)
}

// Identity is the cart merge key. It is implemented only by BareProduct and
// ProductVariant.
type Identity interface {
	Product() string
	isIdentity()
}

// BareProduct identifies a line holding a product without a variant.
type BareProduct struct {
	ProductID string
}

// ProductVariant identifies a line holding one variant of a product.
type ProductVariant struct {
	ProductID string
	VariantID string
}

func (b BareProduct) Product() string    { return b.ProductID }
func (v ProductVariant) Product() string { return v.ProductID }
func (BareProduct) isIdentity()          {}
func (ProductVariant) isIdentity()       {}

// SameIdentity reports whether two keys address the same cart line. A bare
// product never matches a variant of the same product.
func SameIdentity(a, b Identity) bool {
	switch x := a.(type) {
	case BareProduct:
		y, ok := b.(BareProduct)
		return ok && x.ProductID == y.ProductID
	case ProductVariant:
		y, ok := b.(ProductVariant)
		return ok && x.ProductID == y.ProductID && x.VariantID == y.VariantID
	default:
		return false
	}
}

// Attribute is one named variant attribute, e.g. color=Rojo.
type Attribute struct {
	Name  string
	Value string
}

// Attributes is an ordered attribute mapping. It encodes to and decodes from
// a JSON object while keeping key order.
type Attributes []Attribute

// Get returns the value for name, or "" when absent.
func (a Attributes) Get(name string) string {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

// Values returns the non-empty values in order.
func (a Attributes) Values() []string {
	out := make([]string, 0, len(a))
	for _, attr := range a {
		if strings.TrimSpace(attr.Value) == "" {
			continue
		}
		out = append(out, attr.Value)
	}
	return out
}

// Label joins the non-empty values with " / ".
func (a Attributes) Label() string {
	return strings.Join(a.Values(), " / ")
}

// Map returns the attributes as an unordered map.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(a))
	for _, attr := range a {
		m[attr.Name] = attr.Value
	}
	return m
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}
	var out Attributes
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attributes: unexpected key %v", keyTok)
		}
		var value *string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attributes: value for %q: %w", key, err)
		}
		if value == nil {
			out = append(out, Attribute{Name: key})
			continue
		}
		out = append(out, Attribute{Name: key, Value: *value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}
