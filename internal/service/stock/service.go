package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-storefront/internal/domain"
	stockrepo "catalog-storefront/internal/repository/stock"
)

// ErrInvalidMove is returned for malformed move requests.
var ErrInvalidMove = errors.New("invalid stock move")

// DefaultSource labels moves recorded through the scan tool.
const DefaultSource = "scan"

type MoveInput struct {
	Code      string  `json:"code"`
	MoveType  string  `json:"moveType"`
	Qty       int     `json:"qty"`
	Source    string  `json:"source"`
	UserLabel *string `json:"userLabel"`
}

type Service struct {
	repo stockrepo.Repository
}

func New(repo stockrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Move applies a stock adjustment to the product or variant the code
// (SKU or barcode) points at.
func (s *Service) Move(ctx context.Context, in MoveInput) (*domain.StockMove, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: code required", ErrInvalidMove)
	}
	moveType, ok := normalizeMoveType(in.MoveType)
	if !ok {
		return nil, fmt.Errorf("%w: move type must be IN or OUT", ErrInvalidMove)
	}
	if in.Qty <= 0 {
		return nil, fmt.Errorf("%w: qty must be positive", ErrInvalidMove)
	}

	target, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = DefaultSource
	}
	var label *string
	if in.UserLabel != nil {
		if l := strings.TrimSpace(*in.UserLabel); l != "" {
			label = &l
		}
	}

	return s.repo.Apply(ctx, stockrepo.Move{
		Target:    *target,
		MoveType:  moveType,
		Qty:       in.Qty,
		Source:    source,
		UserLabel: label,
	})
}

func normalizeMoveType(v string) (domain.MoveType, bool) {
	v = strings.ToUpper(strings.TrimSpace(v))
	switch {
	case strings.HasPrefix(v, string(domain.MoveIn)):
		return domain.MoveIn, true
	case strings.HasPrefix(v, string(domain.MoveOut)):
		return domain.MoveOut, true
	default:
		return "", false
	}
}
