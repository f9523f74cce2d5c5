package checkout

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"catalog-storefront/internal/domain"
)

type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) OpenURL(_ context.Context, url string) error {
	if r.err != nil {
		return r.err
	}
	r.urls = append(r.urls, url)
	return nil
}

func sampleLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: "A", Name: "Taza", UnitPrice: price(2990), Quantity: 2},
		{ProductID: "B", Name: "Polera", UnitPrice: price(9990), Quantity: 1, Variant: &domain.LineVariant{
			VariantID:  "v1",
			Attributes: domain.Attributes{{Name: "color", Value: "Azul"}},
		}},
	}
}

func TestFlowConfirmOpensLink(t *testing.T) {
	opener := &recordingOpener{}
	flow := NewFlow(NewEncoder("56912345678"), nil)
	sess := flow.Begin(sampleLines(), 15970)

	preview := sess.Preview()
	if !preview.CanConfirm || preview.Empty || preview.TotalLabel != "$15.970" {
		t.Fatalf("unexpected preview %+v", preview)
	}
	if len(preview.Lines) != 2 || preview.Lines[0].LineTotalLabel != "$5.980" || preview.Lines[1].Variant != "Azul" {
		t.Fatalf("unexpected preview lines %+v", preview.Lines)
	}

	link, err := sess.Confirm(context.Background(), opener)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(opener.urls) != 1 || opener.urls[0] != link {
		t.Fatalf("expected opener to receive %q, got %v", link, opener.urls)
	}

	if _, err := sess.Confirm(context.Background(), opener); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected closed session, got %v", err)
	}
}

func TestFlowBeginCopiesLines(t *testing.T) {
	lines := sampleLines()
	flow := NewFlow(NewEncoder("569"), nil)
	sess := flow.Begin(lines, 15970)
	lines[0].Quantity = 50

	if sess.Preview().Lines[0].Quantity != 2 {
		t.Fatalf("session should hold a snapshot")
	}
}

func TestFlowCancel(t *testing.T) {
	opener := &recordingOpener{}
	flow := NewFlow(NewEncoder("569"), nil)
	lines := sampleLines()
	sess := flow.Begin(lines, 15970)
	sess.Cancel()

	if _, err := sess.Confirm(context.Background(), opener); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected closed session, got %v", err)
	}
	if len(opener.urls) != 0 {
		t.Fatalf("cancel must not open links")
	}
	if sess.Preview().CanConfirm {
		t.Fatalf("cancelled session cannot confirm")
	}
	if len(lines) != 2 {
		t.Fatalf("lines must be untouched")
	}
}

func TestFlowDisabledWithoutDestination(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	opener := &recordingOpener{}
	flow := NewFlow(NewEncoder(""), logger)

	sess := flow.Begin(sampleLines(), 15970)
	if sess.Preview().CanConfirm {
		t.Fatalf("confirm should be disabled")
	}
	if _, err := sess.Confirm(context.Background(), opener); !errors.Is(err, ErrCheckoutDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
	if _, err := flow.Begin(sampleLines(), 1).Confirm(context.Background(), opener); !errors.Is(err, ErrCheckoutDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
	if len(opener.urls) != 0 {
		t.Fatalf("no link should be opened")
	}
	if got := strings.Count(buf.String(), "not configured"); got != 1 {
		t.Fatalf("expected a single operator warning, got %d: %q", got, buf.String())
	}
}

func TestFlowEmptyCart(t *testing.T) {
	opener := &recordingOpener{}
	flow := NewFlow(NewEncoder("569"), nil)
	sess := flow.Begin(nil, 0)
	preview := sess.Preview()
	if !preview.Empty || preview.CanConfirm {
		t.Fatalf("unexpected preview %+v", preview)
	}
	if _, err := sess.Confirm(context.Background(), opener); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestFlowOpenerError(t *testing.T) {
	opener := &recordingOpener{err: errors.New("blocked")}
	flow := NewFlow(NewEncoder("569"), nil)
	sess := flow.Begin(sampleLines(), 15970)
	if _, err := sess.Confirm(context.Background(), opener); err == nil || !strings.Contains(err.Error(), "blocked") {
		t.Fatalf("expected opener error, got %v", err)
	}
	if _, err := sess.Confirm(context.Background(), opener); err == nil || errors.Is(err, ErrSessionClosed) {
		t.Fatalf("failed confirm should leave the session open, got %v", err)
	}
}
