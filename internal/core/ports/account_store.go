package ports

import (
	"context"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// AccountRecord is one persisted account as read back from storage.
// Role is the raw token; the directory decides what to do with it.
type AccountRecord struct {
	Line     int
	Username string
	Password string
	Role     string
}

// AccountStore persists the account directory between runs.
type AccountStore interface {
	// Load returns the stored records. A missing store yields no records and no error.
	Load(ctx context.Context) ([]AccountRecord, error)
	// Save replaces the stored contents with accounts, in order.
	Save(ctx context.Context, accounts []*domain.Account) error
}
