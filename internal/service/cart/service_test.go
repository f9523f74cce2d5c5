package cart

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"catalog-storefront/internal/checkout"
	"catalog-storefront/internal/domain"
	"catalog-storefront/internal/notify"
	"catalog-storefront/internal/session"
)

type stubCatalog struct {
	products map[string]*domain.Product
	err      error
}

func (s *stubCatalog) Get(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type failingStore struct {
	session.Store
	err error
}

func (f failingStore) Save(context.Context, string, []domain.CartLine) error {
	return f.err
}

func price(v int64) *int64 { return &v }

func testCatalog() *stubCatalog {
	return &stubCatalog{products: map[string]*domain.Product{
		"mug": {ID: "mug", Name: "Taza", Price: price(2990), Stock: 5, Visible: true},
		"shirt": {
			ID: "shirt", Name: "Polera", Price: price(9990), Stock: 10, Visible: true,
			Variants: []domain.Variant{
				{ID: "v-red-m", ProductID: "shirt", Attributes: map[string]string{"color": "Rojo", "talla": "M"}, Stock: 2, IsAvailable: true},
				{ID: "v-blue-l", ProductID: "shirt", Attributes: map[string]string{"color": "Azul", "talla": "L"}, Stock: 4, IsAvailable: false},
			},
		},
		"hidden": {ID: "hidden", Name: "Oculto", Price: price(100), Stock: 1},
	}}
}

func newService(phone string) *Service {
	flow := checkout.NewFlow(checkout.NewEncoder(phone), nil)
	return New(session.NewMemory(time.Hour), testCatalog(), notify.NewBoard(time.Minute), flow, nil)
}

func TestAddItemBareProduct(t *testing.T) {
	svc := newService("")
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug", Quantity: 2})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug"}); err != nil {
		t.Fatalf("add again: %v", err)
	}
	view, err = svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged line of 3, got %+v", view.Lines)
	}
	if view.Total != 8970 || view.TotalLabel != "$8.970" || view.Count != 3 {
		t.Fatalf("unexpected totals %+v", view)
	}
	if !view.Toast.Open || view.Toast.Text != "Agregado: Taza" {
		t.Fatalf("unexpected toast %+v", view.Toast)
	}
}

func TestAddItemSessionsAreIsolated(t *testing.T) {
	svc := newService("")
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.Get(ctx, "s2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 0 || view.Toast.Open {
		t.Fatalf("expected empty cart for other session, got %+v", view)
	}
}

func TestAddItemVariantSelection(t *testing.T) {
	svc := newService("")
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt"}); !errors.Is(err, ErrVariantRequired) {
		t.Fatalf("expected ErrVariantRequired, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", Attributes: map[string]string{"color": "Verde"}}); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", VariantID: "nope"}); !errors.Is(err, ErrVariantNotFound) {
		t.Fatalf("expected ErrVariantNotFound for id, got %v", err)
	}

	view, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", Attributes: map[string]string{"color": "Rojo"}})
	if err != nil {
		t.Fatalf("add variant: %v", err)
	}
	line := view.Lines[0]
	if line.Variant == nil || line.Variant.VariantID != "v-red-m" {
		t.Fatalf("expected red variant line, got %+v", line)
	}
	if view.Toast.Text != "Agregado: Polera (Rojo / M)" {
		t.Fatalf("unexpected toast %q", view.Toast.Text)
	}
}

func TestAddItemStockCeiling(t *testing.T) {
	svc := newService("")
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", VariantID: "v-red-m", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", VariantID: "v-red-m"}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", VariantID: "v-blue-l"}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected unavailable variant to be rejected, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug", Quantity: 6}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock for bare product, got %v", err)
	}
}

func TestAddItemRejectsHiddenAndUnknown(t *testing.T) {
	svc := newService("")
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "hidden"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for hidden product, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "missing"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "  "}); err == nil {
		t.Fatalf("expected error for blank product id")
	}
}

func TestAddItemSaveError(t *testing.T) {
	boom := errors.New("boom")
	flow := checkout.NewFlow(checkout.NewEncoder(""), nil)
	svc := New(failingStore{Store: session.NewMemory(time.Hour), err: boom}, testCatalog(), notify.NewBoard(time.Minute), flow, nil)
	if _, err := svc.AddItem(context.Background(), "s1", AddInput{ProductID: "mug"}); !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestRemoveItemKeepsVariantLines(t *testing.T) {
	svc := newService("")
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "shirt", VariantID: "v-red-m"}); err != nil {
		t.Fatalf("add variant: %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug"}); err != nil {
		t.Fatalf("add mug: %v", err)
	}

	view, err := svc.RemoveItem(ctx, "s1", "shirt", "")
	if err != nil {
		t.Fatalf("remove bare: %v", err)
	}
	if len(view.Lines) != 2 {
		t.Fatalf("removing bare shirt must keep variant line, got %+v", view.Lines)
	}

	view, err = svc.RemoveItem(ctx, "s1", "shirt", "v-red-m")
	if err != nil {
		t.Fatalf("remove variant: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].ProductID != "mug" {
		t.Fatalf("unexpected lines %+v", view.Lines)
	}
}

func TestClear(t *testing.T) {
	svc := newService("")
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.Clear(ctx, "s1")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(view.Lines) != 0 || view.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", view)
	}
	svc.HideToast("s1")
	if svc.Toast("s1").Open {
		t.Fatalf("expected toast hidden")
	}
}

func TestCheckoutPreviewAndConfirm(t *testing.T) {
	svc := newService("+56 9 1234 5678")
	ctx := context.Background()
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	preview, err := svc.Checkout(ctx, "s1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !preview.CanConfirm || preview.Total != 5980 || len(preview.Lines) != 1 {
		t.Fatalf("unexpected preview %+v", preview)
	}

	var opened string
	opener := checkout.LinkOpenerFunc(func(_ context.Context, link string) error {
		opened = link
		return nil
	})
	link, err := svc.ConfirmCheckout(ctx, "s1", opener)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if opened != link || !strings.HasPrefix(link, "https://wa.me/56912345678?text=") {
		t.Fatalf("unexpected link %q (opened %q)", link, opened)
	}
	text, err := url.QueryUnescape(strings.TrimPrefix(link, "https://wa.me/56912345678?text="))
	if err != nil {
		t.Fatalf("unescape: %v", err)
	}
	if !strings.Contains(text, "• Taza x2 — $5.980") {
		t.Fatalf("message missing line: %q", text)
	}

	view, err := svc.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Lines) != 1 {
		t.Fatalf("confirm must not clear the cart")
	}
}

func TestConfirmCheckoutDisabledAndEmpty(t *testing.T) {
	ctx := context.Background()

	svc := newService("")
	if svc.CheckoutEnabled() {
		t.Fatalf("expected checkout disabled without phone")
	}
	if _, err := svc.AddItem(ctx, "s1", AddInput{ProductID: "mug"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ConfirmCheckout(ctx, "s1", nil); !errors.Is(err, checkout.ErrCheckoutDisabled) {
		t.Fatalf("expected ErrCheckoutDisabled, got %v", err)
	}

	svc = newService("56912345678")
	if _, err := svc.ConfirmCheckout(ctx, "empty", nil); !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}
