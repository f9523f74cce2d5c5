package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"catalog-storefront/internal/cart"
	"catalog-storefront/internal/checkout"
	"catalog-storefront/internal/domain"
	"catalog-storefront/internal/money"
	"catalog-storefront/internal/notify"
	"catalog-storefront/internal/session"
	"catalog-storefront/internal/variant"
)

var (
	// ErrVariantRequired is returned when a product with variants is added
	// without choosing one.
	ErrVariantRequired = errors.New("variant selection required")
	// ErrVariantNotFound is returned when the chosen variant does not exist.
	ErrVariantNotFound = errors.New("variant not found")
)

type catalog interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// Service runs cart operations against the cart of one session.
type Service struct {
	sessions session.Store
	catalog  catalog
	toasts   *notify.Board
	flow     *checkout.Flow
	logger   *log.Logger
	locks    sessionLocks
}

func New(sessions session.Store, catalog catalog, toasts *notify.Board, flow *checkout.Flow, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		sessions: sessions,
		catalog:  catalog,
		toasts:   toasts,
		flow:     flow,
		logger:   logger,
		locks:    sessionLocks{locks: make(map[string]*sessionLock)},
	}
}

// AddInput is an add-to-cart request. A variant is chosen either by id or by
// attribute selection.
type AddInput struct {
	ProductID  string            `json:"productId"`
	VariantID  string            `json:"variantId,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Quantity   int               `json:"quantity"`
}

// View is the cart as returned to clients.
type View struct {
	Lines      []domain.CartLine `json:"lines"`
	Total      int64             `json:"total"`
	TotalLabel string            `json:"totalLabel"`
	Count      int               `json:"count"`
	Toast      notify.Toast      `json:"toast"`
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(sessionID, store), nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, in AddInput) (*View, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, errors.New("productId required")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Visible {
		return nil, domain.ErrNotFound
	}

	chosen, err := chooseVariant(product, in)
	if err != nil {
		return nil, err
	}

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	var (
		lineVariant *domain.LineVariant
		identity    domain.Identity = domain.BareProduct{ProductID: product.ID}
		available                   = product.Stock
	)
	if chosen != nil {
		lineVariant = variant.ToLineVariant(*chosen)
		identity = domain.ProductVariant{ProductID: product.ID, VariantID: chosen.ID}
		available = chosen.Stock
		if !chosen.IsAvailable {
			available = 0
		}
	}
	if quantityOf(store, identity)+qty > available {
		return nil, fmt.Errorf("%w: %d available", domain.ErrInsufficientStock, max(available, 0))
	}

	store.AddItem(cart.Item{ProductID: product.ID, Name: product.Name, UnitPrice: product.Price}, qty, lineVariant)
	if err := s.sessions.Save(ctx, sessionID, store.Lines()); err != nil {
		return nil, err
	}
	return s.view(sessionID, store), nil
}

// RemoveItem removes one line. An empty variantID removes only the line
// without a variant.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID, variantID string) (*View, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	store, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store.RemoveItem(strings.TrimSpace(productID), strings.TrimSpace(variantID))
	if err := s.sessions.Save(ctx, sessionID, store.Lines()); err != nil {
		return nil, err
	}
	return s.view(sessionID, store), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.view(sessionID, cart.New()), nil
}

func (s *Service) Toast(sessionID string) notify.Toast {
	return s.toasts.Current(sessionID)
}

func (s *Service) HideToast(sessionID string) {
	s.toasts.Hide(sessionID)
}

// Checkout returns the confirmation summary of the current cart.
func (s *Service) Checkout(ctx context.Context, sessionID string) (checkout.Preview, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return checkout.Preview{}, err
	}
	return s.flow.Begin(store.Lines(), store.Total()).Preview(), nil
}

// ConfirmCheckout builds the order link for the current cart and hands it to
// opener. The cart is left as is.
func (s *Service) ConfirmCheckout(ctx context.Context, sessionID string, opener checkout.LinkOpener) (string, error) {
	store, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	link, err := s.flow.Begin(store.Lines(), store.Total()).Confirm(ctx, opener)
	if err != nil {
		return "", err
	}
	s.logger.Printf("cart service: checkout session=%s lines=%d total=%d", sessionID, len(store.Lines()), store.Total())
	return link, nil
}

// CheckoutEnabled reports whether a checkout destination is configured.
func (s *Service) CheckoutEnabled() bool {
	return s.flow.Enabled()
}

func (s *Service) load(ctx context.Context, sessionID string) (*cart.Store, error) {
	lines, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.Restore(lines, cart.WithNotifier(s.toasts.Notifier(sessionID))), nil
}

func (s *Service) view(sessionID string, store *cart.Store) *View {
	return &View{
		Lines:      store.Lines(),
		Total:      store.Total(),
		TotalLabel: "$" + money.Format(store.Total()),
		Count:      store.Count(),
		Toast:      s.toasts.Current(sessionID),
	}
}

func chooseVariant(p *domain.Product, in AddInput) (*domain.Variant, error) {
	if id := strings.TrimSpace(in.VariantID); id != "" {
		v := variant.FindByID(p.Variants, id)
		if v == nil {
			return nil, ErrVariantNotFound
		}
		return v, nil
	}
	if len(p.Variants) == 0 {
		return nil, nil
	}
	v := variant.Resolve(p.Variants, in.Attributes)
	if v != nil {
		return v, nil
	}
	for _, value := range in.Attributes {
		if value != "" {
			return nil, ErrVariantNotFound
		}
	}
	return nil, ErrVariantRequired
}

func quantityOf(store *cart.Store, id domain.Identity) int {
	for _, line := range store.Lines() {
		if domain.SameIdentity(line.Identity(), id) {
			return line.Quantity
		}
	}
	return 0
}

type sessionLock struct {
	sync.Mutex
	refs int
}

// sessionLocks serialises mutations of one session's cart.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &sessionLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
