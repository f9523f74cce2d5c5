package httpserver

import (
	"testing"

	"catalog-storefront/internal/domain"
)

func TestToProductResponseWithVariants(t *testing.T) {
	price := int64(9990)
	original := int64(12990)
	p := domain.Product{
		ID: "p1", Name: "Polera", Price: &price, OriginalPrice: &original, Stock: 99, Visible: true,
		ImageURL: "https://img.example/p1.jpg",
		Variants: []domain.Variant{
			{ID: "v1", Attributes: map[string]string{"talla": "10", "color": "Rojo"}, Stock: 2, IsAvailable: true, Images: []string{"https://img.example/v1.jpg", " "}},
			{ID: "v2", Attributes: map[string]string{"talla": "8", "color": "Azul"}, Stock: 0, IsAvailable: true},
		},
	}

	resp := toProductResponse(p)
	if resp.PriceLabel != "$9.990" || resp.OriginalPriceLabel != "$12.990" {
		t.Fatalf("unexpected price labels %q %q", resp.PriceLabel, resp.OriginalPriceLabel)
	}
	if resp.Stock != 2 {
		t.Fatalf("expected stock summed over variants, got %d", resp.Stock)
	}
	if !resp.HasVariants || len(resp.Variants) != 2 {
		t.Fatalf("expected two variants, got %+v", resp.Variants)
	}
	if resp.Variants[0].Label != "Rojo / 10" || len(resp.Variants[0].Images) != 1 {
		t.Fatalf("unexpected first variant %+v", resp.Variants[0])
	}
	if resp.Variants[1].IsAvailable {
		t.Fatalf("variant without stock must not be available")
	}
	if resp.Options == nil || len(resp.Options.Tallas) != 2 || resp.Options.Tallas[0] != "8" {
		t.Fatalf("expected numeric size order, got %+v", resp.Options)
	}
	if len(resp.Images) != 1 || resp.Images[0].Label != "Polera" {
		t.Fatalf("unexpected images %+v", resp.Images)
	}
}

func TestToProductResponseWithoutPrice(t *testing.T) {
	original := int64(500)
	resp := toProductResponse(domain.Product{ID: "p1", Name: "Sin precio", OriginalPrice: &original, Stock: 3})
	if resp.PriceLabel != "$0" || resp.OriginalPrice != nil {
		t.Fatalf("unexpected prices %+v", resp)
	}
	if resp.Options != nil || resp.Variants == nil || resp.Images == nil {
		t.Fatalf("expected empty collections, got %+v", resp)
	}
	if resp.Stock != 3 {
		t.Fatalf("expected product stock, got %d", resp.Stock)
	}
}
