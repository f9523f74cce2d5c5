package variant

import (
	"reflect"
	"testing"

	"catalog-storefront/internal/domain"
)

func sampleVariants() []domain.Variant {
	return []domain.Variant{
		{ID: "v1", Attributes: map[string]string{"color": "Rojo", "talla": "M"}, Stock: 3},
		{ID: "v2", Attributes: map[string]string{"color": "Rojo", "talla": "L"}, Stock: 0},
		{ID: "v3", Attributes: map[string]string{"color": "Azul", "talla": "M"}, Stock: 5},
	}
}

func TestResolveExactMatch(t *testing.T) {
	got := Resolve(sampleVariants(), map[string]string{"color": "Rojo", "talla": "L"})
	if got == nil || got.ID != "v2" {
		t.Fatalf("expected v2, got %+v", got)
	}
}

func TestResolveWildcardReturnsFirst(t *testing.T) {
	got := Resolve(sampleVariants(), map[string]string{"talla": "M", "color": ""})
	if got == nil || got.ID != "v1" {
		t.Fatalf("expected first match v1, got %+v", got)
	}
}

func TestResolveEmptySelection(t *testing.T) {
	if got := Resolve(sampleVariants(), nil); got != nil {
		t.Fatalf("expected nil for nil selection, got %+v", got)
	}
	if got := Resolve(sampleVariants(), map[string]string{"color": ""}); got != nil {
		t.Fatalf("expected nil for blank selection, got %+v", got)
	}
}

func TestResolveNoMatch(t *testing.T) {
	if got := Resolve(sampleVariants(), map[string]string{"color": "Verde"}); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if got := Resolve(sampleVariants(), map[string]string{"material": "Lana"}); got != nil {
		t.Fatalf("unknown attribute must not match, got %+v", got)
	}
}

func TestAvailable(t *testing.T) {
	vs := sampleVariants()
	if Available(vs, map[string]string{"color": "Rojo", "talla": "L"}) {
		t.Fatalf("out of stock variant should not be available")
	}
	if !Available(vs, map[string]string{"color": "Azul"}) {
		t.Fatalf("azul should be available")
	}
}

func TestFindByID(t *testing.T) {
	if v := FindByID(sampleVariants(), "v3"); v == nil || v.Attributes["color"] != "Azul" {
		t.Fatalf("unexpected %+v", v)
	}
	if v := FindByID(sampleVariants(), "nope"); v != nil {
		t.Fatalf("expected nil, got %+v", v)
	}
}

func TestFormatAttributes(t *testing.T) {
	attrs := map[string]string{"diseño": "Liso", "talla": "M", "color": "Rojo", "material": "Algodón", "empty": ""}
	if got := FormatAttributes(attrs); got != "Rojo / M / Liso / Algodón" {
		t.Fatalf("unexpected %q", got)
	}
	line := ToLineVariant(domain.Variant{ID: "v1", Attributes: attrs})
	if line.VariantID != "v1" || len(line.Attributes) != 4 || line.Attributes[0].Name != "color" {
		t.Fatalf("unexpected line variant %+v", line)
	}
}

func TestGenerateSKU(t *testing.T) {
	got := GenerateSKU("POL-001", map[string]string{"talla": "xl", "color": "rojo"})
	if got != "POL-001-ROJO-XL" {
		t.Fatalf("unexpected sku %q", got)
	}
}

func TestHasDuplicates(t *testing.T) {
	if HasDuplicates(sampleVariants()) {
		t.Fatalf("sample variants are unique")
	}
	dup := append(sampleVariants(), domain.Variant{ID: "v4", Attributes: map[string]string{"talla": "M", "color": "Azul", "diseño": ""}})
	if !HasDuplicates(dup) {
		t.Fatalf("expected duplicate combination")
	}
}

func TestExtractUnique(t *testing.T) {
	vs := []domain.Variant{
		{Attributes: map[string]string{"color": "Rojo", "talla": "10"}},
		{Attributes: map[string]string{"color": "Azul", "talla": "8"}},
		{Attributes: map[string]string{"color": "Rojo", "talla": "12", "diseño": "Rayas"}},
	}
	got := ExtractUnique(vs)
	want := Options{
		Colors:  []string{"Azul", "Rojo"},
		Tallas:  []string{"8", "10", "12"},
		Disenos: []string{"Rayas"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestTotalStock(t *testing.T) {
	vs := append(sampleVariants(), domain.Variant{ID: "v9", Stock: -2})
	if got := TotalStock(vs); got != 8 {
		t.Fatalf("expected 8, got %d", got)
	}
}
