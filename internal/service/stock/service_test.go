package stock

import (
	"context"
	"errors"
	"testing"

	"catalog-storefront/internal/domain"
	stockrepo "catalog-storefront/internal/repository/stock"
)

type stubRepo struct {
	target    *domain.StockTarget
	findErr   error
	applyErr  error
	lastCode  string
	lastMove  stockrepo.Move
	applyCall int
}

func (s *stubRepo) FindByCode(_ context.Context, code string) (*domain.StockTarget, error) {
	s.lastCode = code
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.target, nil
}

func (s *stubRepo) Apply(_ context.Context, m stockrepo.Move) (*domain.StockMove, error) {
	s.applyCall++
	s.lastMove = m
	if s.applyErr != nil {
		return nil, s.applyErr
	}
	return &domain.StockMove{ProductID: m.Target.ProductID, MoveType: m.MoveType, Qty: m.Qty, StockAfter: 7}, nil
}

func TestMoveNormalisesInput(t *testing.T) {
	repo := &stubRepo{target: &domain.StockTarget{ProductID: "p1"}}
	svc := New(repo)
	label := "  bodega "

	move, err := svc.Move(context.Background(), MoveInput{Code: " 780123 ", MoveType: "out_sale", Qty: 2, UserLabel: &label})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if repo.lastCode != "780123" {
		t.Fatalf("expected trimmed code, got %q", repo.lastCode)
	}
	if repo.lastMove.MoveType != domain.MoveOut || repo.lastMove.Source != DefaultSource {
		t.Fatalf("unexpected move %+v", repo.lastMove)
	}
	if repo.lastMove.UserLabel == nil || *repo.lastMove.UserLabel != "bodega" {
		t.Fatalf("expected trimmed label, got %v", repo.lastMove.UserLabel)
	}
	if move.StockAfter != 7 {
		t.Fatalf("unexpected result %+v", move)
	}
}

func TestMoveValidation(t *testing.T) {
	cases := []struct {
		name string
		in   MoveInput
	}{
		{"missing code", MoveInput{MoveType: "IN", Qty: 1}},
		{"bad type", MoveInput{Code: "x", MoveType: "transfer", Qty: 1}},
		{"zero qty", MoveInput{Code: "x", MoveType: "IN"}},
		{"negative qty", MoveInput{Code: "x", MoveType: "in", Qty: -3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{target: &domain.StockTarget{ProductID: "p1"}}
			_, err := New(repo).Move(context.Background(), tc.in)
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("expected ErrInvalidMove, got %v", err)
			}
			if repo.applyCall != 0 {
				t.Fatalf("apply must not be called")
			}
		})
	}
}

func TestMoveUnknownCode(t *testing.T) {
	repo := &stubRepo{findErr: domain.ErrNotFound}
	if _, err := New(repo).Move(context.Background(), MoveInput{Code: "nope", MoveType: "IN", Qty: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMovePropagatesInsufficientStock(t *testing.T) {
	repo := &stubRepo{target: &domain.StockTarget{ProductID: "p1", VariantID: "v1"}, applyErr: domain.ErrInsufficientStock}
	if _, err := New(repo).Move(context.Background(), MoveInput{Code: "sku", MoveType: "OUT", Qty: 9}); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if repo.lastMove.Target.VariantID != "v1" {
		t.Fatalf("expected variant target, got %+v", repo.lastMove.Target)
	}
}
