package ports

import (
	"context"

	"github.com/s2k/videogame-store/internal/core/domain"
)

// UserService is the account directory.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	// Login starts sess on success and leaves it untouched on failure.
	Login(ctx context.Context, sess *domain.Session, username, password string) (*domain.Account, error)
	Logout(ctx context.Context, sess *domain.Session, account *domain.Account) error
	ChangePassword(ctx context.Context, sess *domain.Session, oldPassword, newPassword string) error
	RemoveUser(ctx context.Context, sess *domain.Session, account *domain.Account) error
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) []*domain.Account
	Restore(ctx context.Context, store AccountStore) (int, error)
	Persist(ctx context.Context, store AccountStore) error
}
