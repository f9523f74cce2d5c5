package product

import (
	"context"
	"strings"

	"catalog-storefront/internal/domain"
	productrepo "catalog-storefront/internal/repository/product"
)

// DefaultSearchLimit caps quick-search results.
const DefaultSearchLimit = 8

const placeholderImage = "/placeholder.svg"

type Service struct {
	repo         productrepo.Repository
	imageBaseURL string
}

// New returns a Service. imageBaseURL is the public prefix of the image
// bucket; image paths are appended to it.
func New(repo productrepo.Repository, imageBaseURL string) *Service {
	return &Service{repo: repo, imageBaseURL: strings.TrimRight(imageBaseURL, "/")}
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.repo.ListVisible(ctx, productrepo.Filter{Category: strings.TrimSpace(category)})
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].ImageURL = s.imageURL(products[i].ImagePath)
	}
	return products, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ImageURL = s.imageURL(p.ImagePath)
	return p, nil
}

// Search matches name, SKU or barcode. An empty query returns no results.
func (s *Service) Search(ctx context.Context, q string, limit int) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Product{}, nil
	}
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}
	return s.repo.Search(ctx, q, limit)
}

func (s *Service) imageURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return placeholderImage
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if s.imageBaseURL == "" {
		return "/" + strings.TrimLeft(path, "/")
	}
	return s.imageBaseURL + "/" + strings.TrimLeft(path, "/")
}
