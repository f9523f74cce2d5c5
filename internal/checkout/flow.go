// Package checkout builds the order message sent to the shop and runs the
// confirmation step that hands the resulting link to the client.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"catalog-storefront/internal/domain"
	"catalog-storefront/internal/money"
)

var (
	// ErrCheckoutDisabled is returned when no destination is configured.
	ErrCheckoutDisabled = errors.New("checkout disabled: destination not configured")
	// ErrEmptyCart is returned when confirming a checkout without lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrSessionClosed is returned when a checkout session was already
	// confirmed or cancelled.
	ErrSessionClosed = errors.New("checkout session closed")
)

// LinkOpener hands a URL to whatever opens external links on the client.
type LinkOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// LinkOpenerFunc adapts a function to LinkOpener.
type LinkOpenerFunc func(ctx context.Context, url string) error

func (f LinkOpenerFunc) OpenURL(ctx context.Context, url string) error {
	return f(ctx, url)
}

// Flow creates checkout sessions.
type Flow struct {
	encoder Encoder
	logger  *log.Logger

	warnOnce sync.Once
}

// NewFlow returns a Flow. A nil logger discards operator warnings.
func NewFlow(encoder Encoder, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Flow{encoder: encoder, logger: logger}
}

// Enabled reports whether confirming can ever open a link.
func (f *Flow) Enabled() bool {
	if f.encoder.Actionable() {
		return true
	}
	f.warnOnce.Do(func() {
		f.logger.Printf("checkout: destination address not configured, confirm disabled")
	})
	return false
}

// Begin snapshots lines and total for confirmation. The caller's slice is
// copied and never modified.
func (f *Flow) Begin(lines []domain.CartLine, total int64) *Session {
	snapshot := make([]domain.CartLine, len(lines))
	copy(snapshot, lines)
	return &Session{flow: f, lines: snapshot, total: total}
}

// Session is one pending confirmation.
type Session struct {
	flow   *Flow
	lines  []domain.CartLine
	total  int64
	closed bool
}

// PreviewLine is one row of the confirmation summary.
type PreviewLine struct {
	Name           string `json:"name"`
	Variant        string `json:"variant,omitempty"`
	Quantity       int    `json:"quantity"`
	LineTotal      int64  `json:"lineTotal"`
	LineTotalLabel string `json:"lineTotalLabel"`
}

// Preview is the confirmation summary.
type Preview struct {
	Lines      []PreviewLine `json:"lines"`
	Total      int64         `json:"total"`
	TotalLabel string        `json:"totalLabel"`
	Empty      bool          `json:"empty"`
	CanConfirm bool          `json:"canConfirm"`
}

// Preview renders the snapshot without side effects.
func (s *Session) Preview() Preview {
	rows := make([]PreviewLine, 0, len(s.lines))
	for _, line := range s.lines {
		row := PreviewLine{
			Name:           line.Name,
			Quantity:       line.Quantity,
			LineTotal:      line.LineTotal(),
			LineTotalLabel: "$" + money.Format(line.LineTotal()),
		}
		if line.Variant != nil {
			row.Variant = line.Variant.Attributes.Label()
		}
		rows = append(rows, row)
	}
	return Preview{
		Lines:      rows,
		Total:      s.total,
		TotalLabel: "$" + money.Format(s.total),
		Empty:      len(s.lines) == 0,
		CanConfirm: !s.closed && len(s.lines) > 0 && s.flow.Enabled(),
	}
}

// Confirm encodes the snapshot and hands the link to opener. It returns the
// link. A nil opener only builds the link.
func (s *Session) Confirm(ctx context.Context, opener LinkOpener) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	if len(s.lines) == 0 {
		return "", ErrEmptyCart
	}
	if !s.flow.Enabled() {
		return "", ErrCheckoutDisabled
	}
	link := s.flow.encoder.BuildOrderMessage(s.lines, s.total)
	if opener != nil {
		if err := opener.OpenURL(ctx, link); err != nil {
			return "", fmt.Errorf("open checkout link: %w", err)
		}
	}
	s.closed = true
	return link, nil
}

// Cancel closes the session without touching the cart.
func (s *Session) Cancel() {
	s.closed = true
}
