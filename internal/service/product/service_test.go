package product

import (
	"context"
	"testing"

	"catalog-storefront/internal/domain"
	productrepo "catalog-storefront/internal/repository/product"
)

type stubRepo struct {
	productrepo.Repository
	list        []domain.Product
	product     *domain.Product
	lastFilter  productrepo.Filter
	lastQuery   string
	lastLimit   int
	searchCalls int
}

func (s *stubRepo) ListVisible(_ context.Context, f productrepo.Filter) ([]domain.Product, error) {
	s.lastFilter = f
	return s.list, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	if s.product == nil {
		return nil, domain.ErrNotFound
	}
	return s.product, nil
}

func (s *stubRepo) Search(_ context.Context, q string, limit int) ([]domain.Product, error) {
	s.searchCalls++
	s.lastQuery = q
	s.lastLimit = limit
	return s.list, nil
}

func TestListResolvesImages(t *testing.T) {
	repo := &stubRepo{list: []domain.Product{
		{ID: "1", ImagePath: "products/taza.jpg"},
		{ID: "2"},
		{ID: "3", ImagePath: "https://cdn.example/x.png"},
	}}
	svc := New(repo, "https://storage.example/product-images/")

	got, err := svc.List(context.Background(), "  ropa ")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastFilter.Category != "ropa" {
		t.Fatalf("category should be trimmed, got %q", repo.lastFilter.Category)
	}
	if got[0].ImageURL != "https://storage.example/product-images/products/taza.jpg" {
		t.Fatalf("unexpected image url %q", got[0].ImageURL)
	}
	if got[1].ImageURL != placeholderImage || got[2].ImageURL != "https://cdn.example/x.png" {
		t.Fatalf("unexpected image urls %q %q", got[1].ImageURL, got[2].ImageURL)
	}
}

func TestGetEmptyID(t *testing.T) {
	svc := New(&stubRepo{}, "")
	if _, err := svc.Get(context.Background(), " "); err != domain.ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	repo := &stubRepo{list: []domain.Product{{ID: "1"}}}
	svc := New(repo, "")

	got, err := svc.Search(context.Background(), "   ", 5)
	if err != nil || len(got) != 0 || repo.searchCalls != 0 {
		t.Fatalf("blank query should short-circuit, got %v err=%v calls=%d", got, err, repo.searchCalls)
	}

	if _, err := svc.Search(context.Background(), " taza ", 50); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastQuery != "taza" || repo.lastLimit != DefaultSearchLimit {
		t.Fatalf("unexpected call q=%q limit=%d", repo.lastQuery, repo.lastLimit)
	}
}
