// Package variant resolves product variants from attribute selections and
// provides the attribute helpers used by the catalog.
package variant

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"catalog-storefront/internal/domain"
)

// Well-known attribute names, in display order.
const (
	AttrColor  = "color"
	AttrTalla  = "talla"
	AttrDiseno = "diseño"
)

var displayOrder = []string{AttrColor, AttrTalla, AttrDiseno}

// Resolve returns the first variant whose attributes equal every non-empty
// selected value. Keys not selected match anything. An empty selection
// resolves to nil: a variant must be chosen explicitly.
func Resolve(variants []domain.Variant, selected map[string]string) *domain.Variant {
	keys := selectedKeys(selected)
	if len(keys) == 0 {
		return nil
	}
	for i := range variants {
		if matches(variants[i], selected, keys) {
			return &variants[i]
		}
	}
	return nil
}

// Available reports whether the selection resolves to a variant with stock.
func Available(variants []domain.Variant, selected map[string]string) bool {
	v := Resolve(variants, selected)
	return v != nil && v.Stock > 0
}

// FindByID returns the variant with the given id, or nil.
func FindByID(variants []domain.Variant, id string) *domain.Variant {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i]
		}
	}
	return nil
}

func selectedKeys(selected map[string]string) []string {
	keys := make([]string, 0, len(selected))
	for k, v := range selected {
		if v != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func matches(v domain.Variant, selected map[string]string, keys []string) bool {
	for _, k := range keys {
		if v.Attributes[k] != selected[k] {
			return false
		}
	}
	return true
}

// OrderedKeys lists attribute names with values: color, talla, diseño first,
// then the rest alphabetically.
func OrderedKeys(attrs map[string]string) []string {
	var keys []string
	for _, k := range displayOrder {
		if attrs[k] != "" {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k, v := range attrs {
		if v == "" || isDisplayKey(k) {
			continue
		}
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func isDisplayKey(k string) bool {
	for _, d := range displayOrder {
		if d == k {
			return true
		}
	}
	return false
}

// FormatAttributes renders attribute values in display order joined by " / ".
func FormatAttributes(attrs map[string]string) string {
	return ToAttributes(attrs).Label()
}

// ToAttributes converts a variant attribute map into ordered cart attributes.
func ToAttributes(attrs map[string]string) domain.Attributes {
	keys := OrderedKeys(attrs)
	out := make(domain.Attributes, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Attribute{Name: k, Value: attrs[k]})
	}
	return out
}

// ToLineVariant builds the cart representation of v.
func ToLineVariant(v domain.Variant) *domain.LineVariant {
	return &domain.LineVariant{VariantID: v.ID, Attributes: ToAttributes(v.Attributes)}
}

// GenerateSKU derives a variant SKU: PRODUCT-COLOR-TALLA-DISEÑO.
func GenerateSKU(productSKU string, attrs map[string]string) string {
	parts := []string{productSKU}
	for _, k := range displayOrder {
		if v := attrs[k]; v != "" {
			parts = append(parts, strings.ToUpper(v))
		}
	}
	return strings.Join(parts, "-")
}

// HasDuplicates reports whether two variants share the same non-empty
// attribute combination.
func HasDuplicates(variants []domain.Variant) bool {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		key := combinationKey(v.Attributes)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}

func combinationKey(attrs map[string]string) string {
	pairs := make([][2]string, 0, len(attrs))
	for k, v := range attrs {
		if v == "" {
			continue
		}
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	b, _ := json.Marshal(pairs)
	return string(b)
}

// Options are the distinct attribute values offered across variants.
type Options struct {
	Colors  []string `json:"colors"`
	Tallas  []string `json:"tallas"`
	Disenos []string `json:"disenos"`
}

// ExtractUnique collects the distinct colors, sizes and designs. Sizes sort
// numerically when both sides are numbers.
func ExtractUnique(variants []domain.Variant) Options {
	colors := map[string]struct{}{}
	tallas := map[string]struct{}{}
	disenos := map[string]struct{}{}
	for _, v := range variants {
		if c := v.Attributes[AttrColor]; c != "" {
			colors[c] = struct{}{}
		}
		if t := v.Attributes[AttrTalla]; t != "" {
			tallas[t] = struct{}{}
		}
		if d := v.Attributes[AttrDiseno]; d != "" {
			disenos[d] = struct{}{}
		}
	}

	opts := Options{
		Colors:  sortedKeys(colors),
		Tallas:  sortedKeys(tallas),
		Disenos: sortedKeys(disenos),
	}
	sort.SliceStable(opts.Tallas, func(i, j int) bool {
		a, errA := strconv.Atoi(opts.Tallas[i])
		b, errB := strconv.Atoi(opts.Tallas[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return opts.Tallas[i] < opts.Tallas[j]
	})
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TotalStock sums the stock of every variant, ignoring negatives.
func TotalStock(variants []domain.Variant) int {
	total := 0
	for _, v := range variants {
		if v.Stock > 0 {
			total += v.Stock
		}
	}
	return total
}
