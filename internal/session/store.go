// Package session stores the cart lines of each browser session between
// requests. Entries expire after a period without writes.
package session

import (
	"context"

	"catalog-storefront/internal/domain"
	"github.com/google/uuid"
)

// Store keeps cart lines per session id.
type Store interface {
	// Load returns the lines of a session. Unknown or expired sessions yield
	// an empty cart.
	Load(ctx context.Context, id string) ([]domain.CartLine, error)
	Save(ctx context.Context, id string, lines []domain.CartLine) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
